// Package cmdutil holds helpers shared by the mdp commands.
package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/google/renameio"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/open-cli-collective/md-preview/internal/config"
	"github.com/open-cli-collective/md-preview/internal/view"
)

// ErrNoInput is returned when no file is given and stdin is a terminal.
var ErrNoInput = errors.New("no input: pass a file or pipe markdown on stdin")

// Globals are the values of the root command's persistent flags.
type Globals struct {
	ConfigPath string
	Output     string
	NoColor    bool
}

// GlobalsFromFlags reads the persistent flags from a command's flag set.
func GlobalsFromFlags(flags *pflag.FlagSet) Globals {
	var g Globals
	g.ConfigPath, _ = flags.GetString("config")
	g.Output, _ = flags.GetString("output")
	g.NoColor, _ = flags.GetBool("no-color")
	return g
}

// Path returns the config file path, honoring --config.
func (g Globals) Path() string {
	if g.ConfigPath != "" {
		return g.ConfigPath
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads the config file with environment overrides and defaults.
func (g Globals) LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnv(g.Path())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'mdp init' to configure)", err)
	}
	return cfg, nil
}

// Format resolves the output format: --output first, then the config file.
func (g Globals) Format(cfg *config.Config) (view.Format, error) {
	format := g.Output
	if format == "" && cfg != nil {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return "", err
	}
	if format == "" {
		return view.FormatTable, nil
	}
	return view.Format(format), nil
}

// ReadInput returns the contents of path, or of stdin when path is empty
// or "-". A terminal stdin is rejected with ErrNoInput rather than waiting
// for keyboard input.
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}

	if stdin == nil {
		stdin = os.Stdin
	}
	if IsTerminal(stdin) {
		return "", ErrNoInput
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WriteOutput writes content atomically to path, or to w when path is empty.
func WriteOutput(path string, w io.Writer, content string) error {
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := renameio.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CheckListen verifies that addr can be bound, then releases it.
func CheckListen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", addr, err)
	}
	return ln.Close()
}

// CheckDataDir verifies that dir exists or can be created, and is writable.
func CheckDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".mdp-check-*")
	if err != nil {
		return fmt.Errorf("cannot write to %s: %w", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

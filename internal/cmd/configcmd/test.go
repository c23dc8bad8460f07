package configcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/config"
	"github.com/open-cli-collective/md-preview/internal/server"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the configuration can be served",
		Long: `Check that mdp can listen on the configured address and write to the
data directory. When the address is taken, report whether mdp is already
serving on it.`,
		Example: `  # Test configuration
  mdp config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globals := cmdutil.GlobalsFromFlags(cmd.Flags())
			return runTest(cmd.OutOrStdout(), globals, nil)
		},
	}

	return cmd
}

func runTest(w io.Writer, globals cmdutil.Globals, httpClient *http.Client, cfgs ...*config.Config) error {
	if globals.NoColor {
		color.NoColor = true
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = globals.LoadConfig()
		if err != nil {
			return err
		}
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	if err := cmdutil.CheckDataDir(cfg.DataDir); err != nil {
		_, _ = red.Fprintln(w, "✗ Data directory:", err)
		fmt.Fprintln(w, "\nReconfigure with: mdp init")
		return fmt.Errorf("data directory check failed: %w", err)
	}
	_, _ = green.Fprintf(w, "✓ Data directory %s is writable\n", cfg.DataDir)

	if err := cmdutil.CheckListen(cfg.Listen); err != nil {
		if serving(httpClient, cfg.Listen) {
			_, _ = yellow.Fprintf(w, "! mdp is already serving on http://%s/\n", cfg.Listen)
			return nil
		}
		_, _ = red.Fprintln(w, "✗ Listen address:", err)
		fmt.Fprintln(w, "\nCheck your address with: mdp config show")
		return fmt.Errorf("listen check failed: %w", err)
	}
	_, _ = green.Fprintf(w, "✓ Address %s is available\n", cfg.Listen)

	return nil
}

// serving reports whether an mdp server answers on addr.
func serving(client *http.Client, addr string) bool {
	resp, err := client.Get("http://" + addr + "/api/theme")
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	var theme server.ThemeResponse
	if err := json.NewDecoder(resp.Body).Decode(&theme); err != nil {
		return false
	}
	return config.ValidTheme(theme.Theme)
}

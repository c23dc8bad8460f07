// Package init provides the init command for mdp.
package init

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/config"
)

type initOptions struct {
	globals  cmdutil.Globals
	listen   string
	dataDir  string
	noVerify bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mdp configuration",
		Long: `Initialize mdp with the address the editor listens on, where documents
are saved, the default theme and the preview and autosave delays.

The configuration will be saved to ~/.config/mdp/config.yml.`,
		Example: `  # Interactive setup
  mdp init

  # Pre-populate the listen address
  mdp init --listen 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.globals = cmdutil.GlobalsFromFlags(cmd.Flags())
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "Address the editor listens on (e.g., "+config.DefaultListen+")")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Directory for the saved document")
	cmd.Flags().BoolVar(&opts.noVerify, "no-verify", false, "Skip checking the address and data directory")

	return cmd
}

// formValues holds the form fields as entered.
type formValues struct {
	Listen       string
	DataDir      string
	Theme        string
	PreviewDelay string
	SaveDelay    string
}

func runInit(opts *initOptions) error {
	configPath := opts.globals.Path()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	values := defaultValues(opts)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen address").
				Description("host:port the editor is served on").
				Placeholder(config.DefaultListen).
				Value(&values.Listen).
				Validate(validateListen),

			huh.NewInput().
				Title("Data directory").
				Description("Where the document and theme are saved").
				Value(&values.DataDir).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("data directory is required")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(config.Themes...)...).
				Value(&values.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Preview delay (ms)").
				Description("Wait after the last keystroke before re-rendering").
				Value(&values.PreviewDelay).
				Validate(validateDelay),

			huh.NewInput().
				Title("Autosave delay (ms)").
				Description("Wait after the last keystroke before saving").
				Value(&values.SaveDelay).
				Validate(validateDelay),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg, err := buildConfig(values)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Verify unless skipped
	if !opts.noVerify {
		fmt.Print("Verifying configuration... ")
		if err := verifyConfig(cfg); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  mdp serve --open")
	fmt.Println("  mdp render README.md")

	return nil
}

// defaultValues pre-fills the form from flags, then the current
// configuration, then defaults.
func defaultValues(opts *initOptions) *formValues {
	cfg, err := config.LoadWithEnv(opts.globals.Path())
	if err != nil {
		cfg = &config.Config{}
		cfg.ApplyDefaults()
	}

	values := &formValues{
		Listen:       cfg.Listen,
		DataDir:      cfg.DataDir,
		Theme:        cfg.Theme,
		PreviewDelay: strconv.Itoa(cfg.PreviewDelayMS),
		SaveDelay:    strconv.Itoa(cfg.SaveDelayMS),
	}
	if opts.listen != "" {
		values.Listen = opts.listen
	}
	if opts.dataDir != "" {
		values.DataDir = opts.dataDir
	}
	return values
}

func buildConfig(values *formValues) (*config.Config, error) {
	preview, err := parseDelay(values.PreviewDelay)
	if err != nil {
		return nil, fmt.Errorf("preview delay: %w", err)
	}
	save, err := parseDelay(values.SaveDelay)
	if err != nil {
		return nil, fmt.Errorf("autosave delay: %w", err)
	}

	cfg := &config.Config{
		Listen:         values.Listen,
		DataDir:        values.DataDir,
		Theme:          values.Theme,
		PreviewDelayMS: preview,
		SaveDelayMS:    save,
	}
	if err := validateListen(cfg.Listen); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateListen(s string) error {
	if s == "" {
		return fmt.Errorf("listen address is required")
	}
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("listen address must be host:port: %w", err)
	}
	return nil
}

func validateDelay(s string) error {
	_, err := parseDelay(s)
	return err
}

func parseDelay(s string) (int, error) {
	ms, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number of milliseconds", s)
	}
	if ms < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return ms, nil
}

func verifyConfig(cfg *config.Config) error {
	if err := cmdutil.CheckListen(cfg.Listen); err != nil {
		return err
	}
	return cmdutil.CheckDataDir(cfg.DataDir)
}

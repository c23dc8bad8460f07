package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective mdp configuration and where each value comes from.`,
		Example: `  # Show current config
  mdp config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			globals := cmdutil.GlobalsFromFlags(cmd.Flags())
			return runShow(cmd.OutOrStdout(), globals)
		},
	}

	return cmd
}

func runShow(w io.Writer, globals cmdutil.Globals) error {
	if globals.NoColor {
		color.NoColor = true
	}

	configPath := globals.Path()

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides and defaults
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-15s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		source := "default"
		switch {
		case envVar != "" && os.Getenv(envVar) != "" && os.Getenv(envVar) == value:
			source = envVar
		case fileValue != "" && fileValue == value:
			source = "config"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Listen", cfg.Listen, fileCfg.Listen, "MDP_LISTEN")
	printField("Data dir", cfg.DataDir, fileCfg.DataDir, "MDP_DATA_DIR")
	printField("Theme", cfg.Theme, fileCfg.Theme, "MDP_THEME")
	printField("Preview delay", msString(cfg.PreviewDelayMS), msString(fileCfg.PreviewDelayMS), "MDP_PREVIEW_DELAY_MS")
	printField("Save delay", msString(cfg.SaveDelayMS), msString(fileCfg.SaveDelayMS), "MDP_SAVE_DELAY_MS")
	printField("Output", fileCfg.OutputFormat, fileCfg.OutputFormat, "")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// msString formats a delay as it is written in MDP_*_DELAY_MS; zero is
// treated as unset.
func msString(ms int) string {
	if ms == 0 {
		return ""
	}
	return strconv.Itoa(ms)
}

// Package serve provides the serve command.
package serve

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/config"
	"github.com/open-cli-collective/md-preview/internal/server"
	"github.com/open-cli-collective/md-preview/internal/store"
	"github.com/open-cli-collective/md-preview/internal/view"
)

type serveOptions struct {
	globals cmdutil.Globals
	listen  string
	dataDir string
	theme   string
	open    bool

	stdout io.Writer
}

// NewCmdServe creates the serve command.
func NewCmdServe() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live-preview editor",
		Long: `Start a local web server with a split-pane markdown editor and live preview.

The document and the selected theme are saved in the data directory and
restored on the next start. Stop the server with Ctrl+C.`,
		Example: `  # Start on the configured address
  mdp serve

  # Start on another port and open a browser
  mdp serve --listen 127.0.0.1:9000 --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.globals = cmdutil.GlobalsFromFlags(cmd.Flags())
			opts.stdout = cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.listen, "listen", "l", "", "Address to listen on (default from config, "+config.DefaultListen+")")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "Directory for the saved document")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme used until one is chosen in the editor: light or dark")
	cmd.Flags().BoolVarP(&opts.open, "open", "w", false, "Open the editor in a browser")

	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	cfg, err := opts.globals.LoadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, opts); err != nil {
		return err
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.FormatTable, opts.globals.NoColor)
	renderer.SetWriter(opts.stdout)

	srv := server.New(server.OptionsFromConfig(cfg), st)
	return srv.ListenAndServe(ctx, func(addr string) {
		url := "http://" + addr + "/"
		renderer.Success("Serving on " + url)
		renderer.RenderKeyValue("Data", st.Dir())
		if opts.open {
			if err := openBrowser(url); err != nil {
				renderer.Warning(fmt.Sprintf("failed to open browser: %v", err))
			}
		}
	})
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *config.Config, opts *serveOptions) error {
	if opts.listen != "" {
		cfg.Listen = opts.listen
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.theme != "" {
		cfg.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}

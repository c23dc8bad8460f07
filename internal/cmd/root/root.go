// Package root provides the root command for the mdp CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/check"
	"github.com/open-cli-collective/md-preview/internal/cmd/completion"
	"github.com/open-cli-collective/md-preview/internal/cmd/configcmd"
	"github.com/open-cli-collective/md-preview/internal/cmd/export"
	"github.com/open-cli-collective/md-preview/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/md-preview/internal/cmd/init"
	"github.com/open-cli-collective/md-preview/internal/cmd/render"
	"github.com/open-cli-collective/md-preview/internal/cmd/serve"
	"github.com/open-cli-collective/md-preview/internal/version"
)

// NewCmdRoot creates the root command for mdp.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdp",
		Short: "A live-preview markdown editor and converter",
		Long: `mdp converts a small markdown dialect to HTML and serves a local
split-pane editor that previews the document as you type.

Render, export and import documents from the command line, or start the
editor with: mdp serve --open`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mdp/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(export.NewCmdExport())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(serve.NewCmdServe())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

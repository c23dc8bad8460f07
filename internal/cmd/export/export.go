// Package export provides the export command.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/config"
	"github.com/open-cli-collective/md-preview/pkg/md"
)

type exportOptions struct {
	globals cmdutil.Globals
	file    string
	out     string
	title   string
	theme   string

	stdin  io.Reader
	stdout io.Writer
}

// NewCmdExport creates the export command.
func NewCmdExport() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export markdown as a standalone HTML document",
		Long: `Export a markdown file, or standard input, as a complete HTML document.

The document embeds the markdown source next to the rendered preview, so
'mdp import' can recover the exact source later.`,
		Example: `  # Export to a file
  mdp export notes.md --out notes.html

  # Export with a title and the dark theme
  mdp export notes.md --title "Meeting notes" --theme dark > notes.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFromFlags(cmd.Flags())
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runExport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Document title (default \""+md.DefaultDocumentTitle+"\")")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme written to the document: light or dark")

	return cmd
}

func runExport(opts *exportOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	if opts.theme != "" && !config.ValidTheme(opts.theme) {
		return fmt.Errorf("invalid theme %q: must be one of %v", opts.theme, config.Themes)
	}

	source, err := cmdutil.ReadInput(opts.file, opts.stdin)
	if err != nil {
		return err
	}

	doc, err := md.ExportDocument(source, md.ExportOptions{
		Title: opts.title,
		Theme: opts.theme,
	})
	if err != nil {
		return err
	}

	return cmdutil.WriteOutput(opts.out, opts.stdout, doc)
}

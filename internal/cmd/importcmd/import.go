// Package importcmd provides the import command.
package importcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/store"
	"github.com/open-cli-collective/md-preview/internal/view"
	"github.com/open-cli-collective/md-preview/pkg/md"
)

type importOptions struct {
	globals cmdutil.Globals
	file    string
	out     string
	save    bool

	stdout io.Writer
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Recover markdown from a file",
		Long: `Read a markdown, text or HTML file and print its markdown source.

HTML documents written by 'mdp export' yield their embedded source exactly.
Other HTML documents with a preview element are converted back to markdown.
Markdown and text files are printed as-is.

With --save the result replaces the document served by 'mdp serve'.`,
		Example: `  # Recover the source of an exported document
  mdp import notes.html

  # Load a file into the editor's saved document
  mdp import notes.md --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFromFlags(cmd.Flags())
			opts.file = args[0]
			opts.stdout = cmd.OutOrStdout()
			return runImport(opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write the markdown to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Replace the saved editor document")

	return cmd
}

func runImport(opts *importOptions, st *store.Store) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	markdown, err := md.ImportDocument(filepath.Base(opts.file), data)
	if err != nil {
		return err
	}

	if !opts.save {
		return cmdutil.WriteOutput(opts.out, opts.stdout, markdown)
	}

	// Open the store if not provided (allows injection for testing)
	if st == nil {
		cfg, err := opts.globals.LoadConfig()
		if err != nil {
			return err
		}
		st, err = store.Open(cfg.DataDir)
		if err != nil {
			return err
		}
	}

	if err := st.Put(store.KeyContent, markdown); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.FormatTable, opts.globals.NoColor)
	renderer.SetWriter(opts.stdout)
	renderer.Success("Imported " + filepath.Base(opts.file) + " into " + st.Dir())
	return nil
}

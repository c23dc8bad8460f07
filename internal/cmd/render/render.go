// Package render provides the render command.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/view"
	"github.com/open-cli-collective/md-preview/pkg/md"
)

type renderOptions struct {
	globals cmdutil.Globals
	file    string
	out     string
	tokens  bool
	quiet   bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render markdown to HTML",
		Long: `Render a markdown file, or standard input, to an HTML fragment.

Only a small dialect is recognized: headings, unordered list items,
blockquotes, horizontal rules, pipe tables and inline bold, italic,
strikethrough, code and links. Anything else becomes a paragraph.

Content that is dropped, such as a malformed table, is reported as a
warning on standard error.`,
		Example: `  # Render a file
  mdp render README.md

  # Render from stdin
  echo "# Hello" | mdp render

  # Write the fragment to a file
  mdp render notes.md --out notes.html

  # Show the block tokens instead of HTML
  mdp render notes.md --tokens -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFromFlags(cmd.Flags())
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runRender(opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "", "Write the HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.tokens, "tokens", false, "Print block tokens instead of HTML")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print warnings")

	return cmd
}

func runRender(opts *renderOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	if opts.stderr == nil {
		opts.stderr = os.Stderr
	}

	cfg, err := opts.globals.LoadConfig()
	if err != nil {
		return err
	}

	format, err := opts.globals.Format(cfg)
	if err != nil {
		return err
	}

	source, err := cmdutil.ReadInput(opts.file, opts.stdin)
	if err != nil {
		return err
	}

	result := md.ParseWithWarnings(source)

	if !opts.quiet && len(result.Warnings) > 0 {
		warn := view.NewRenderer(format, opts.globals.NoColor)
		warn.SetWriter(opts.stderr)
		warn.Warnings(result.Warnings)
	}

	if opts.tokens {
		renderer := view.NewRenderer(format, opts.globals.NoColor)
		renderer.SetWriter(opts.stdout)
		return renderTokens(renderer, result.Tokens)
	}

	return cmdutil.WriteOutput(opts.out, opts.stdout, md.Render(result.Tokens))
}

func renderTokens(renderer *view.Renderer, tokens []md.Token) error {
	if renderer.Format() == view.FormatJSON {
		if tokens == nil {
			tokens = []md.Token{}
		}
		return renderer.RenderJSON(tokens)
	}

	headers := []string{"TYPE", "LEVEL", "CONTENT"}
	var rows [][]string
	for _, tok := range tokens {
		level := ""
		if tok.Type == md.TokenHeading {
			level = strconv.Itoa(tok.Level)
		}
		rows = append(rows, []string{tok.Type.String(), level, describe(tok)})
	}

	renderer.RenderTable(headers, rows)
	return nil
}

// describe summarizes a token's content for table output.
func describe(tok md.Token) string {
	if tok.Table != nil {
		return fmt.Sprintf("%d columns, %d rows", len(tok.Table.Headers), len(tok.Table.Rows))
	}
	return view.Truncate(tok.Content, 60)
}

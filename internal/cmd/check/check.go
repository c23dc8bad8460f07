// Package check provides the check command.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/internal/compat"
	"github.com/open-cli-collective/md-preview/internal/view"
)

// ErrDiffers is returned in strict mode when the renderings differ.
var ErrDiffers = errors.New("preview differs from CommonMark rendering")

type checkOptions struct {
	globals cmdutil.Globals
	file    string
	strict  bool

	stdin  io.Reader
	stdout io.Writer
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Compare the preview with a CommonMark renderer",
		Long: `Render markdown with both the preview dialect and a CommonMark + GFM
renderer and list the blocks that differ.

Lines starting with '-' exist only in the preview, lines starting with '+'
only in the CommonMark rendering. Use it to find constructs, such as ordered
lists or fenced code, that the preview does not support.`,
		Example: `  # Compare a file
  mdp check README.md

  # Fail when anything differs (for CI)
  mdp check README.md --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.globals = cmdutil.GlobalsFromFlags(cmd.Flags())
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			return runCheck(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with an error when the renderings differ")

	return cmd
}

func runCheck(opts *checkOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
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

	report, err := compat.Compare(source)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(format, opts.globals.NoColor)
	renderer.SetWriter(opts.stdout)

	switch format {
	case view.FormatJSON:
		if err := renderer.RenderJSON(newCheckResult(report)); err != nil {
			return err
		}
	case view.FormatPlain:
		for _, line := range report.Changes() {
			renderer.RenderText(string(line.Op) + " " + line.Text)
		}
	default:
		renderTable(renderer, report)
	}

	if opts.strict && !report.Equal() {
		return ErrDiffers
	}
	return nil
}

func renderTable(renderer *view.Renderer, report *compat.Report) {
	renderer.Warnings(report.Warnings)

	changes := report.Changes()
	if len(changes) == 0 {
		renderer.Success(fmt.Sprintf("%d blocks match", len(report.Ours)))
		return
	}

	for _, line := range changes {
		renderer.DiffLine(byte(line.Op), line.Text)
	}
	renderer.Error(fmt.Sprintf("%d block lines differ", len(changes)))
}

// checkResult is the JSON form of a compat report.
type checkResult struct {
	Equal     bool          `json:"equal"`
	Preview   []string      `json:"preview"`
	Reference []string      `json:"reference"`
	Changes   []checkChange `json:"changes"`
	Warnings  []string      `json:"warnings"`
}

type checkChange struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

func newCheckResult(report *compat.Report) checkResult {
	result := checkResult{
		Equal:     report.Equal(),
		Preview:   nonNil(report.Ours),
		Reference: nonNil(report.Reference),
		Changes:   []checkChange{},
		Warnings:  nonNil(report.Warnings),
	}
	for _, line := range report.Changes() {
		result.Changes = append(result.Changes, checkChange{Op: string(line.Op), Text: line.Text})
	}
	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

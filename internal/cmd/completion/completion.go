// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// shell describes how to generate and install completions for one shell.
type shell struct {
	name     string
	load     string // loads completions into the current session
	install  string // installs completions permanently
	generate func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:    "bash",
		load:    "source <(mdp completion bash)",
		install: "mdp completion bash | sudo tee /etc/bash_completion.d/mdp > /dev/null",
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		},
	},
	{
		name:    "zsh",
		load:    "source <(mdp completion zsh)",
		install: `mdp completion zsh > "${fpath[1]}/_mdp"`,
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name:    "fish",
		load:    "mdp completion fish | source",
		install: "mdp completion fish > ~/.config/fish/completions/mdp.fish",
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:    "powershell",
		load:    "mdp completion powershell | Out-String | Invoke-Expression",
		install: "mdp completion powershell >> $PROFILE",
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mdp.

These scripts enable tab-completion for commands, flags, and arguments.
See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newCmdShell(sh))
	}

	return cmd
}

func newCmdShell(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:   sh.name,
		Short: fmt.Sprintf("Generate %s completion script", sh.name),
		Long: fmt.Sprintf(`Generate %s completion script for mdp.

To load completions in your current shell session:

  %s

To load completions for every new session:

  %s`, sh.name, sh.load, sh.install),
		Example: fmt.Sprintf(`  # Load in current session
  %s

  # Install permanently
  %s`, sh.load, sh.install),
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.generate(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

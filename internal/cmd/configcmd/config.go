// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mdp configuration",
		Long:  `Commands for viewing, testing, and clearing mdp configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envVars lists the environment variables that override the config file.
var envVars = []string{
	"MDP_LISTEN",
	"MDP_DATA_DIR",
	"MDP_THEME",
	"MDP_PREVIEW_DELAY_MS",
	"MDP_SAVE_DELAY_MS",
}

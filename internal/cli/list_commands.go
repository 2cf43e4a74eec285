// internal/cli/list_commands.go
package modelmap

import "github.com/spf13/cobra"

// commandsCmd implements 'list commands'.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the modelmap commands",
	Long:  `The 'commands' subcommand prints every modelmap command path, indented by depth, next to its short description. Cobra's help and completion commands are left out.`,
	Run: func(cmd *cobra.Command, args []string) {
		runListCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// internal/cli/show_config.go
package modelmap

import (
	"github.com/k0kubun/pp"
	"github.com/mwiater/modelmap/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd implements 'show config', which prints the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags and environment variables accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := appconfig.Config{}
		if c := GetConfig(); c != nil {
			cfg = *c
		}
		out := cmd.OutOrStdout()
		appconfig.ShowConfig(out, cfg.ConfigPath, cfg)

		if cfg.Debug {
			if cfg.AccessToken != "" {
				cfg.AccessToken = "(redacted)"
			}
			pp.Fprintln(out, cfg)
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}

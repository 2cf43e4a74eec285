// internal/cli/list_regions.go
package modelmap

import (
	"fmt"

	"github.com/mwiater/modelmap/internal/appconfig"
	"github.com/spf13/cobra"
)

// listRegionsCmd implements 'list regions', which prints the regions a scan queries.
var listRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions that are scanned",
	Long:  `The 'regions' subcommand lists the regions queried by 'list models', taken from the configuration file or the built-in default list.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := appconfig.Config{}
		if c := GetConfig(); c != nil {
			cfg = *c
		}
		regions := cfg.RegionList()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Regions (%d):\n", len(regions))
		for _, r := range regions {
			fmt.Fprintf(out, "  %s\n", r)
		}
	},
}

func init() {
	listCmd.AddCommand(listRegionsCmd)
}

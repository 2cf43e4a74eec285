package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	subscription := cfg.Subscription
	if subscription == "" {
		subscription = "(resolved from az account)"
	}
	token := "(DefaultAzureCredential)"
	if cfg.AccessToken != "" {
		token = "(set)"
	}

	regions := cfg.RegionList()
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Subscription:    %s\n", subscription)
	fmt.Fprintf(out, "  Access Token:    %s\n", token)
	fmt.Fprintf(out, "  Endpoint:        %s\n", cfg.ManagementEndpoint())
	fmt.Fprintf(out, "  API Version:     %s\n", cfg.ModelsAPIVersion())
	fmt.Fprintf(out, "  Mode:            %s\n", cfg.Mode())
	fmt.Fprintf(out, "  Timeout:         %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Concurrency:     %d\n", cfg.Workers())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Locations:       %v\n", cfg.ShowLocations)
	fmt.Fprintf(out, "  Export JSON:     %s\n", cfg.ExportPath)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Regions (%d):    %s\n", len(regions), strings.Join(regions, ", "))
}

// internal/models/models.go
// Package models scans the configured regions for models, aggregates them
// into a catalog and reports their regional coverage.
package models

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mwiater/modelmap/internal/appconfig"
	"github.com/mwiater/modelmap/internal/catalog"
	"github.com/mwiater/modelmap/internal/logging"
	"github.com/mwiater/modelmap/internal/util"
)

// ListModels scans every configured region of the subscription through q and
// writes the coverage report to out. A scan that finds nothing is not an error.
func ListModels(ctx context.Context, config appconfig.Config, subscription string, q RegionQuerier, out io.Writer) error {
	regions := config.RegionList()
	mode := config.Mode()

	if !config.JSONMode {
		WriteHeader(out, subscription, mode, len(regions))
	}

	started := time.Now()
	result := Scan(ctx, q, regions, mode, config.Workers())
	logScan(result, time.Since(started))

	report := Report{
		Subscription: subscription,
		Mode:         mode,
		Regions:      regions,
		Summaries:    catalog.Summarize(result.Catalog, regions, config.ShowLocations),
	}

	if config.ExportPath != "" {
		data, err := MarshalReport(report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := util.WriteFile(config.ExportPath, append(data, '\n')); err != nil {
			return fmt.Errorf("export report to %s: %w", config.ExportPath, err)
		}
		logging.LogEvent("report exported to %s", config.ExportPath)
	}

	if config.JSONMode {
		return WriteJSON(out, report)
	}
	WriteReport(out, report, config.ShowLocations)
	return nil
}

// logScan records a one-line summary of the scan in the log file.
func logScan(result ScanResult, elapsed time.Duration) {
	failed := 0
	for _, r := range result.Regions {
		if r.Err != nil {
			failed++
		}
	}
	logging.LogEvent("scanned %d regions in %s: %d models, %d regions unavailable",
		len(result.Regions), elapsed.Round(time.Millisecond), len(result.Catalog), failed)
}

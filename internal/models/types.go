// internal/models/types.go
package models

import (
	"context"

	"github.com/mwiater/modelmap/internal/catalog"
)

// RegionQuerier lists the raw model descriptors a single region reports.
// Implementations may fail for any reason; the scan treats a failure as an
// empty region.
type RegionQuerier interface {
	ListModels(ctx context.Context, region string) ([]catalog.Descriptor, error)
}

// RegionResult records what one region contributed to a scan.
type RegionResult struct {
	Region   string
	Reported int
	Matched  int
	Err      error
}

// ScanResult is the outcome of querying every region once.
type ScanResult struct {
	Catalog catalog.Catalog
	Regions []RegionResult
}

// Report is everything the text and JSON writers need.
type Report struct {
	Subscription string
	Mode         catalog.Mode
	Regions      []string
	Summaries    []catalog.Summary
}

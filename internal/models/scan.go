// internal/models/scan.go
package models

import (
	"context"

	"github.com/mwiater/modelmap/internal/catalog"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scan queries every region through q, keeps the descriptors that pass the
// capability filter for mode and folds them into one catalog. At most workers
// regions are queried at once; a value below one queries them sequentially.
// A region whose query fails contributes nothing and the scan continues.
func Scan(ctx context.Context, q RegionQuerier, regions []string, mode catalog.Mode, workers int) ScanResult {
	if workers < 1 {
		workers = 1
	}
	b := catalog.NewBuilder(regions)
	results := make([]RegionResult, len(regions))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, region := range regions {
		g.Go(func() error {
			results[i] = scanRegion(ctx, q, b, region, mode)
			return nil
		})
	}
	_ = g.Wait()

	return ScanResult{Catalog: b.Catalog(), Regions: results}
}

// scanRegion queries a single region and merges its matching descriptors.
func scanRegion(ctx context.Context, q RegionQuerier, b *catalog.Builder, region string, mode catalog.Mode) RegionResult {
	result := RegionResult{Region: region}

	descriptors, err := q.ListModels(ctx, region)
	if err != nil {
		log.WithField("region", region).Debugf("region query failed, treating as empty: %v", err)
		result.Err = err
		return result
	}
	result.Reported = len(descriptors)

	for _, d := range descriptors {
		if !catalog.Include(d, mode) {
			continue
		}
		if err := b.Merge(region, d); err != nil {
			log.WithField("region", region).Warnf("merge skipped: %v", err)
			continue
		}
		result.Matched++
	}
	log.WithFields(log.Fields{
		"region":   region,
		"reported": result.Reported,
		"matched":  result.Matched,
	}).Debug("region scanned")
	return result
}

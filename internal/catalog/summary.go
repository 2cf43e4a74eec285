package catalog

import (
	"fmt"

	"github.com/mwiater/modelmap/internal/util"
)

// AllRegionsLabel is the location summary for models offered in every region.
const AllRegionsLabel = "All regions"

// Coverage describes how much of the region list a catalog entry reaches.
type Coverage struct {
	Regions []string
	Global  bool
	Label   string
}

// VersionRegions pairs a version with the sorted regions that offer it.
type VersionRegions struct {
	Version string   `json:"version"`
	Regions []string `json:"regions"`
}

// Summary is one row of the coverage report.
type Summary struct {
	Key       Key
	Entry     *Entry
	Coverage  Coverage
	Breakdown []VersionRegions
}

// CoverageOf computes the region union of an entry and whether it contains
// every region in the list. Containment is decided on sets, so duplicates in
// the list and regions outside it do not affect the result.
func CoverageOf(e *Entry, regions []string) Coverage {
	union := e.Regions()
	all := util.SetOf(regions)

	global := true
	for r := range all {
		if _, ok := union[r]; !ok {
			global = false
			break
		}
	}

	label := AllRegionsLabel
	if !global {
		label = fmt.Sprintf("%d/%d regions", len(union), len(all))
	}
	return Coverage{
		Regions: util.SortedKeys(union),
		Global:  global,
		Label:   label,
	}
}

// Breakdown lists each version of the entry with its sorted regions.
func Breakdown(e *Entry) []VersionRegions {
	labels := e.VersionLabels()
	out := make([]VersionRegions, 0, len(labels))
	for _, v := range labels {
		out = append(out, VersionRegions{Version: v, Regions: e.RegionsFor(v)})
	}
	return out
}

// Summarize returns one Summary per catalog entry in key order. When detailed
// is set, entries that are not global carry a per-version breakdown. An empty
// catalog yields an empty slice.
func Summarize(cat Catalog, regions []string, detailed bool) []Summary {
	keys := cat.Keys()
	out := make([]Summary, 0, len(keys))
	for _, k := range keys {
		entry := cat[k]
		s := Summary{
			Key:      k,
			Entry:    entry,
			Coverage: CoverageOf(entry, regions),
		}
		if detailed && !s.Coverage.Global {
			s.Breakdown = Breakdown(entry)
		}
		out = append(out, s)
	}
	return out
}

// Partial returns the summaries whose coverage is not global.
func Partial(summaries []Summary) []Summary {
	var out []Summary
	for _, s := range summaries {
		if !s.Coverage.Global {
			out = append(out, s)
		}
	}
	return out
}

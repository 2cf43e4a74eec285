// Package catalog folds per-region model descriptors into a deduplicated
// model catalog and summarizes how much of the region list each model covers.
package catalog

import (
	"github.com/mwiater/modelmap/internal/util"
)

const (
	// OpenAIFormat is the format tag ARM reports for OpenAI-format models.
	OpenAIFormat = "OpenAI"
	// DefaultVersion labels descriptors that report no version.
	DefaultVersion = "(default)"
	// TruthyFlag is the value ARM uses for an enabled capability.
	TruthyFlag = "true"
	// CapabilityResponses is the capability flag for the Responses API.
	CapabilityResponses = "responses"
	// CapabilityChatCompletion is the capability flag for chat completions.
	CapabilityChatCompletion = "chatCompletion"
)

// Descriptor is a single model as reported by one region.
type Descriptor struct {
	Format       string            `json:"format,omitempty"`
	Name         string            `json:"name,omitempty"`
	Version      string            `json:"version,omitempty"`
	Capabilities map[string]string `json:"capabilities,omitempty"`
	SKUs         []string          `json:"skus,omitempty"`
}

// Key identifies a model family independent of version and region.
type Key struct {
	Format string
	Name   string
}

// Less orders keys by format, then name.
func (k Key) Less(other Key) bool {
	if k.Format != other.Format {
		return k.Format < other.Format
	}
	return k.Name < other.Name
}

// KeyOf returns the catalog key for a descriptor. A missing name is kept as "".
func KeyOf(d Descriptor) Key {
	return Key{Format: d.Format, Name: d.Name}
}

// VersionLabel returns the descriptor version or DefaultVersion when it is empty.
func VersionLabel(d Descriptor) string {
	if d.Version == "" {
		return DefaultVersion
	}
	return d.Version
}

// Entry accumulates every version, region and SKU seen for one Key.
type Entry struct {
	Format   string
	Versions map[string]map[string]struct{}
	SKUs     map[string]struct{}
}

func newEntry(format string) *Entry {
	return &Entry{
		Format:   format,
		Versions: make(map[string]map[string]struct{}),
		SKUs:     make(map[string]struct{}),
	}
}

// VersionLabels returns the entry's versions sorted lexicographically.
func (e *Entry) VersionLabels() []string {
	return util.SortedKeys(e.Versions)
}

// RegionsFor returns the sorted regions offering the given version.
func (e *Entry) RegionsFor(version string) []string {
	return util.SortedKeys(e.Versions[version])
}

// Regions returns the union of regions across all versions.
func (e *Entry) Regions() map[string]struct{} {
	union := make(map[string]struct{})
	for _, regions := range e.Versions {
		for region := range regions {
			union[region] = struct{}{}
		}
	}
	return union
}

// SKUNames returns the sorted SKU names seen for the entry.
func (e *Entry) SKUNames() []string {
	return util.SortedKeys(e.SKUs)
}

func (e *Entry) clone() *Entry {
	out := newEntry(e.Format)
	for version, regions := range e.Versions {
		set := make(map[string]struct{}, len(regions))
		for region := range regions {
			set[region] = struct{}{}
		}
		out.Versions[version] = set
	}
	for sku := range e.SKUs {
		out.SKUs[sku] = struct{}{}
	}
	return out
}

// Catalog maps model keys to their accumulated entries.
type Catalog map[Key]*Entry

// Keys returns the catalog keys sorted by format, then name.
func (c Catalog) Keys() []Key {
	keys := make([]Key, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	util.SortFunc(keys, Key.Less)
	return keys
}

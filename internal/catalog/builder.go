package catalog

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownRegion is returned by Merge for regions outside the builder's region list.
var ErrUnknownRegion = errors.New("region is not in the region list")

// Builder owns a Catalog for the duration of one scan. Merge is safe for
// concurrent use; merges are serialized so the result does not depend on the
// order in which regions finish.
type Builder struct {
	mu      sync.Mutex
	regions map[string]struct{}
	entries Catalog
}

// NewBuilder returns an empty builder that accepts merges for the given regions.
func NewBuilder(regions []string) *Builder {
	allowed := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		allowed[r] = struct{}{}
	}
	return &Builder{
		regions: allowed,
		entries: make(Catalog),
	}
}

// Merge folds a descriptor reported by region into the catalog. Merging the
// same descriptor twice leaves the catalog unchanged. When a key already
// exists with a different format, the first-seen format is kept.
func (b *Builder) Merge(region string, d Descriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.regions[region]; !ok {
		return fmt.Errorf("merge %q: %w", region, ErrUnknownRegion)
	}

	key := KeyOf(d)
	entry, ok := b.entries[key]
	if !ok {
		entry = newEntry(d.Format)
		b.entries[key] = entry
	}

	version := VersionLabel(d)
	regions, ok := entry.Versions[version]
	if !ok {
		regions = make(map[string]struct{})
		entry.Versions[version] = regions
	}
	regions[region] = struct{}{}

	for _, sku := range d.SKUs {
		if sku == "" {
			continue
		}
		entry.SKUs[sku] = struct{}{}
	}
	return nil
}

// Len returns the number of distinct keys merged so far.
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Catalog returns a copy of the catalog built so far.
func (b *Builder) Catalog() Catalog {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(Catalog, len(b.entries))
	for k, e := range b.entries {
		out[k] = e.clone()
	}
	return out
}

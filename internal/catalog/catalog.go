// Package catalog holds the in-memory vendor catalog. Like the corpus it is
// copy-on-write: a refresh builds the full snapshot before swapping, so
// concurrent scoring sees either the old or the new catalog, never a mix.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ttcdx/vendorlens/internal/domain"
	"github.com/ttcdx/vendorlens/internal/domain/vendor"
)

// Catalog is a snapshot of vendor profiles ordered by ID.
type Catalog struct {
	mu      sync.RWMutex
	byID    map[string]vendor.Vendor
	ordered []vendor.Vendor
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{byID: make(map[string]vendor.Vendor)}
}

// Replace swaps the full vendor set atomically.
func (c *Catalog) Replace(vendors []vendor.Vendor) error {
	byID := make(map[string]vendor.Vendor, len(vendors))
	ordered := make([]vendor.Vendor, len(vendors))
	copy(ordered, vendors)
	for _, v := range vendors {
		if _, dup := byID[v.ID()]; dup {
			return fmt.Errorf("duplicate vendor ID %q", v.ID())
		}
		byID[v.ID()] = v
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID() < ordered[j].ID() })

	c.mu.Lock()
	c.byID = byID
	c.ordered = ordered
	c.mu.Unlock()
	return nil
}

// Get returns the vendor with the given ID.
func (c *Catalog) Get(id string) (vendor.Vendor, error) {
	c.mu.RLock()
	v, ok := c.byID[id]
	c.mu.RUnlock()
	if !ok {
		return vendor.Vendor{}, fmt.Errorf("vendor %q: %w", id, domain.ErrNotFound)
	}
	return v, nil
}

// All returns the current snapshot in ID order.
func (c *Catalog) All() []vendor.Vendor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]vendor.Vendor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of vendors in the current snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}

package catalog

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrInvalidProduct is returned when a product record fails validation.
var ErrInvalidProduct = errors.New("catalog: invalid product")

// Product is a single storefront item. The grid only reads it.
type Product struct {
	ID              string
	Name            string
	Edible          bool
	PriceMinor      int64
	Currency        string
	ImageURL        string
	Description     string
	DescriptionHTML template.HTML
}

// Snapshot is an immutable view of the catalog at a given revision.
type Snapshot struct {
	Products []Product
	Revision uint64
}

// Source supplies the current product list to the storefront.
type Source interface {
	Snapshot() Snapshot
}

// Catalog holds the live product list and swaps it atomically on reload.
type Catalog struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
}

// New returns a catalog seeded with the provided products.
func New(products []Product) *Catalog {
	c := &Catalog{}
	c.current.Store(&Snapshot{Products: cloneProducts(products), Revision: 1})
	return c
}

// Snapshot returns the current catalog contents.
func (c *Catalog) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	snap := c.current.Load()
	if snap == nil {
		return Snapshot{}
	}
	return *snap
}

// Replace swaps in a new product list and bumps the revision.
func (c *Catalog) Replace(products []Product) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var rev uint64 = 1
	if prev := c.current.Load(); prev != nil {
		rev = prev.Revision + 1
	}
	c.current.Store(&Snapshot{Products: cloneProducts(products), Revision: rev})
	return rev
}

// Validate checks required fields and identifier uniqueness.
func Validate(products []Product) error {
	seen := make(map[string]int, len(products))
	for i, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("%w: product #%d has no id", ErrInvalidProduct, i+1)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: product %q has no name", ErrInvalidProduct, id)
		}
		if p.PriceMinor < 0 {
			return fmt.Errorf("%w: product %q has a negative price", ErrInvalidProduct, id)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate id %q (#%d and #%d)", ErrInvalidProduct, id, prev+1, i+1)
		}
		seen[id] = i
	}
	return nil
}

func cloneProducts(in []Product) []Product {
	if len(in) == 0 {
		return []Product{}
	}
	out := make([]Product, len(in))
	copy(out, in)
	return out
}

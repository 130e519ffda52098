package productgrid

import (
	"sync"
	"unsafe"

	"github.com/camposjoaoc/Seedly/internal/catalog"
)

// FilterEdible returns the edible subsequence of products when edibleOnly is set,
// or products unchanged otherwise. The input is never modified.
func FilterEdible(products []catalog.Product, edibleOnly bool) []catalog.Product {
	if !edibleOnly {
		return products
	}
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Edible {
			out = append(out, p)
		}
	}
	return out
}

// sourceIdentity identifies a product list by its backing array, length and revision.
type sourceIdentity struct {
	data     *catalog.Product
	length   int
	revision uint64
}

func identityOf(snap catalog.Snapshot) sourceIdentity {
	return sourceIdentity{
		data:     unsafe.SliceData(snap.Products),
		length:   len(snap.Products),
		revision: snap.Revision,
	}
}

// Filter memoises FilterEdible per source list. A cached result is reused until the
// list's backing array, length or revision changes.
type Filter struct {
	mu       sync.Mutex
	source   sourceIdentity
	primed   bool
	results  map[bool][]catalog.Product
	computes int
}

// NewFilter returns an empty memoising filter.
func NewFilter() *Filter {
	return &Filter{results: make(map[bool][]catalog.Product, 2)}
}

// Apply returns the filtered list for the snapshot, recomputing only when the
// source list or the flag has not been seen yet.
func (f *Filter) Apply(snap catalog.Snapshot, edibleOnly bool) []catalog.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.results == nil {
		f.results = make(map[bool][]catalog.Product, 2)
	}
	if id := identityOf(snap); !f.primed || f.source != id {
		clear(f.results)
		f.source = id
		f.primed = true
	}
	if cached, ok := f.results[edibleOnly]; ok {
		return cached
	}
	out := FilterEdible(snap.Products, edibleOnly)
	f.results[edibleOnly] = out
	f.computes++
	return out
}

// Computations reports how many times the filter actually ran.
func (f *Filter) Computations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.computes
}

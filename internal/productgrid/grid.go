// Package productgrid implements the paginated product grid: the edible filter,
// the "show more" cursor and the scroll target handed to the browser after an expansion.
package productgrid

import (
	"context"
	"time"

	"github.com/camposjoaoc/Seedly/internal/catalog"
)

const (
	// SmallViewportStep is the number of cards revealed per step on small screens.
	SmallViewportStep = 3
	// LargeViewportStep is the number of cards revealed per step elsewhere.
	LargeViewportStep = 8

	// DefaultScrollOffset keeps the reference card this many pixels below the top edge.
	DefaultScrollOffset = 100
	// DefaultScrollDelay approximates the time the browser needs to settle the new cards.
	DefaultScrollDelay = 300 * time.Millisecond
)

// Steps holds the load step for each viewport class.
type Steps struct {
	Small int
	Large int
}

// DefaultSteps returns the stock 3/8 step pair.
func DefaultSteps() Steps {
	return Steps{Small: SmallViewportStep, Large: LargeViewportStep}
}

// LoadStep picks the step for the viewport class. The result is always positive.
func (s Steps) LoadStep(small bool) int {
	step := s.Large
	if small {
		step = s.Small
	}
	if step <= 0 {
		return 1
	}
	return step
}

// ScrollPlan tells the browser which card to bring into view after an expansion.
type ScrollPlan struct {
	Target string
	Offset int
	Delay  time.Duration
}

// Empty reports whether there is nothing to scroll to.
func (p ScrollPlan) Empty() bool {
	return p.Target == ""
}

// Option customises a Grid.
type Option func(*Grid)

// WithScroll overrides the scroll offset and settle delay.
func WithScroll(offset int, delay time.Duration) Option {
	return func(g *Grid) {
		if offset >= 0 {
			g.scrollOffset = offset
		}
		if delay >= 0 {
			g.scrollDelay = delay
		}
	}
}

// Grid is the pagination state of one grid mount over an already filtered list.
type Grid struct {
	filtered     []catalog.Product
	step         int
	store        CursorStore
	key          string
	displayed    []catalog.Product
	hasMore      bool
	scrollOffset int
	scrollDelay  time.Duration
}

// New builds a grid. A nil store behaves as one that never remembers anything.
func New(filtered []catalog.Product, step int, store CursorStore, key string, opts ...Option) *Grid {
	if step <= 0 {
		step = 1
	}
	if store == nil {
		store = nopStore{}
	}
	g := &Grid{
		filtered:     filtered,
		step:         step,
		store:        store,
		key:          key,
		displayed:    filtered[:0:0],
		scrollOffset: DefaultScrollOffset,
		scrollDelay:  DefaultScrollDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Sync re-derives the displayed prefix from the stored cursor. It runs whenever the grid
// mounts or its filtered list, step or stored cursor changes.
func (g *Grid) Sync(ctx context.Context) {
	initial := g.store.Cursor(ctx, g.key)
	if initial < g.step {
		initial = g.step
	}
	g.displayed = g.filtered[:min(initial, len(g.filtered))]
	g.hasMore = len(g.filtered) > initial
}

// Restore sets the displayed prefix to the count the client currently shows.
func (g *Grid) Restore(shown int) {
	shown = max(0, min(shown, len(g.filtered)))
	g.displayed = g.filtered[:shown]
	g.hasMore = shown < len(g.filtered)
}

// ShowMore reveals the next step, stores the new cursor and returns the scroll target:
// the card that was last visible before the expansion.
func (g *Grid) ShowMore(ctx context.Context) ScrollPlan {
	var plan ScrollPlan
	if n := len(g.displayed); n > 0 {
		plan = ScrollPlan{
			Target: AnchorID(g.displayed[n-1]),
			Offset: g.scrollOffset,
			Delay:  g.scrollDelay,
		}
	}

	next := len(g.displayed) + g.step
	g.displayed = g.filtered[:min(next, len(g.filtered))]
	g.hasMore = len(g.displayed) < len(g.filtered)
	g.store.SetCursor(ctx, g.key, len(g.displayed))
	return plan
}

// Displayed returns the visible prefix of the filtered list.
func (g *Grid) Displayed() []catalog.Product {
	return g.displayed
}

// Filtered returns the full filtered list.
func (g *Grid) Filtered() []catalog.Product {
	return g.filtered
}

// HasMore reports whether the "Show More" control should be shown.
func (g *Grid) HasMore() bool {
	return g.hasMore
}

// Empty reports whether the filtered list has no products at all.
func (g *Grid) Empty() bool {
	return len(g.filtered) == 0
}

// Step returns the load step in use.
func (g *Grid) Step() int {
	return g.step
}

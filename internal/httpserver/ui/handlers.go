package ui

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/camposjoaoc/Seedly/internal/catalog"
	custommw "github.com/camposjoaoc/Seedly/internal/httpserver/middleware"
	"github.com/camposjoaoc/Seedly/internal/observability"
	"github.com/camposjoaoc/Seedly/internal/pagesession"
	"github.com/camposjoaoc/Seedly/internal/productgrid"
	"github.com/camposjoaoc/Seedly/internal/templates"
	"github.com/camposjoaoc/Seedly/internal/viewport"
)

// ScrollEvent is the htmx event name the browser listens for after a grid expansion.
const ScrollEvent = "grid:scroll"

const defaultTitle = "Seedly"

// Dependencies collects the collaborators required by the UI handlers.
type Dependencies struct {
	Catalog      catalog.Source
	Filter       *productgrid.Filter
	CursorStore  productgrid.CursorStore
	Sessions     *pagesession.Manager
	Viewport     viewport.Classifier
	Steps        productgrid.Steps
	ScrollOffset int
	ScrollDelay  time.Duration
	Cards        templates.CardRenderer
	CSRFHeader   string
	Title        string
}

// Handlers exposes HTTP handlers for the products page and its grid fragments.
type Handlers struct {
	catalog      catalog.Source
	filter       *productgrid.Filter
	store        productgrid.CursorStore
	sessions     *pagesession.Manager
	viewport     viewport.Classifier
	steps        productgrid.Steps
	scrollOffset int
	scrollDelay  time.Duration
	cards        templates.CardRenderer
	csrfHeader   string
	title        string
}

// NewHandlers wires the UI handler set, filling unset collaborators with defaults.
func NewHandlers(deps Dependencies) (*Handlers, error) {
	h := &Handlers{
		catalog:      deps.Catalog,
		filter:       deps.Filter,
		store:        deps.CursorStore,
		sessions:     deps.Sessions,
		viewport:     deps.Viewport,
		steps:        deps.Steps,
		scrollOffset: deps.ScrollOffset,
		scrollDelay:  deps.ScrollDelay,
		cards:        deps.Cards,
		csrfHeader:   deps.CSRFHeader,
		title:        deps.Title,
	}
	if h.catalog == nil {
		h.catalog = catalog.New(catalog.StaticProducts())
	}
	if h.filter == nil {
		h.filter = productgrid.NewFilter()
	}
	if h.store == nil {
		h.store = productgrid.NewMemoryStore(productgrid.DefaultCursorTTL)
	}
	if h.sessions == nil {
		sessions, err := pagesession.NewManager(pagesession.Config{})
		if err != nil {
			return nil, err
		}
		h.sessions = sessions
	}
	if h.viewport == nil {
		h.viewport = viewport.HeaderClassifier{}
	}
	if h.steps == (productgrid.Steps{}) {
		h.steps = productgrid.DefaultSteps()
	}
	if h.scrollOffset == 0 && h.scrollDelay == 0 {
		h.scrollOffset = productgrid.DefaultScrollOffset
		h.scrollDelay = productgrid.DefaultScrollDelay
	}
	if h.cards == nil {
		h.cards = templates.DefaultCardRenderer()
	}
	if h.csrfHeader == "" {
		h.csrfHeader = custommw.DefaultCSRFHeaderName
	}
	if h.title == "" {
		h.title = defaultTitle
	}
	return h, nil
}

// Index redirects to the products page.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/products", http.StatusFound)
}

// Healthz reports liveness.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// ProductsPage renders the full page. Every full render starts a new page session,
// so a reload never resumes an earlier cursor.
func (h *Handlers) ProductsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	sess, token, err := h.sessions.Issue()
	if err != nil {
		logger.Error("products: issue page session", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	edibleOnly := parseFlag(r.FormValue("edible"))
	grid := h.mount(r, edibleOnly, sess.ID)
	grid.Sync(ctx)

	payload := templates.PageData{
		Title:      h.title,
		EdibleOnly: edibleOnly,
		CSRFHeader: h.csrfHeader,
		CSRFToken:  custommw.CSRFTokenFromContext(ctx),
		Grid:       gridData(grid, token, edibleOnly),
	}
	templ.Handler(templates.Page(payload, h.cards)).ServeHTTP(w, r)
}

// GridFragment remounts the grid after a filter toggle. The displayed count comes
// from the page session's stored cursor.
func (h *Handlers) GridFragment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, token, ok := h.resolve(ctx, w, r.FormValue("page"))
	if !ok {
		return
	}

	edibleOnly := parseFlag(r.FormValue("edible"))
	grid := h.mount(r, edibleOnly, sess.ID)
	grid.Sync(ctx)

	templ.Handler(templates.Grid(gridData(grid, token, edibleOnly), h.cards)).ServeHTTP(w, r)
}

// ShowMore expands the grid by one load step and asks the browser to scroll back to
// the card that was last visible before the expansion.
func (h *Handlers) ShowMore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess, token, ok := h.resolve(ctx, w, r.PostFormValue("page"))
	if !ok {
		return
	}

	edibleOnly := parseFlag(r.PostFormValue("edible"))
	grid := h.mount(r, edibleOnly, sess.ID)
	if shown, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("shown"))); err == nil {
		grid.Restore(shown)
	} else {
		grid.Sync(ctx)
	}

	plan := grid.ShowMore(ctx)
	if detail, ok := scrollEvent(plan); ok {
		if err := custommw.TriggerAfterSettle(w, ScrollEvent, detail); err != nil {
			logger.Warn("products: scroll trigger", zap.Error(err))
		}
	}

	hx := custommw.HTMXInfoFromContext(ctx)
	logger.Debug("products: show more",
		zap.String("page_session", sess.ID),
		zap.String("hx_trigger", hx.TriggerID),
		zap.String("hx_target", hx.Target),
		zap.Bool("edible_only", edibleOnly),
		zap.Int("displayed", len(grid.Displayed())),
		zap.Int("filtered", len(grid.Filtered())),
	)
	templ.Handler(templates.Grid(gridData(grid, token, edibleOnly), h.cards)).ServeHTTP(w, r)
}

func (h *Handlers) mount(r *http.Request, edibleOnly bool, key string) *productgrid.Grid {
	filtered := h.filter.Apply(h.catalog.Snapshot(), edibleOnly)
	step := h.steps.LoadStep(h.viewport.IsSmall(r))
	return productgrid.New(filtered, step, h.store, key, productgrid.WithScroll(h.scrollOffset, h.scrollDelay))
}

// resolve maps the posted page token to its session. Unusable tokens are replaced by a
// fresh session without surfacing an error to the client.
func (h *Handlers) resolve(ctx context.Context, w http.ResponseWriter, token string) (pagesession.Session, string, bool) {
	logger := observability.FromContext(ctx)

	sess, signed, fresh, err := h.sessions.ResolveOrIssue(token)
	if err != nil {
		logger.Error("products: issue page session", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return pagesession.Session{}, "", false
	}
	if fresh {
		logger.Debug("products: page session replaced", zap.Bool("token_present", strings.TrimSpace(token) != ""))
	}
	return sess, signed, true
}

func gridData(grid *productgrid.Grid, token string, edibleOnly bool) templates.GridData {
	return templates.GridData{
		PageToken:  token,
		EdibleOnly: edibleOnly,
		Displayed:  grid.Displayed(),
		HasMore:    grid.HasMore(),
		Empty:      grid.Empty(),
	}
}

type scrollDetail struct {
	Target string `json:"target"`
	Anchor string `json:"anchor"`
	Offset int    `json:"offset"`
	Delay  int64  `json:"delay"`
}

// scrollEvent converts the plan into the event detail. The event is dispatched on
// <body> since the button that triggered it has been swapped out.
func scrollEvent(plan productgrid.ScrollPlan) (scrollDetail, bool) {
	if plan.Empty() {
		return scrollDetail{}, false
	}
	return scrollDetail{
		Target: "body",
		Anchor: plan.Target,
		Offset: plan.Offset,
		Delay:  plan.Delay.Milliseconds(),
	}, true
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

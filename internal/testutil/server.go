package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/camposjoaoc/Seedly/internal/catalog"
	"github.com/camposjoaoc/Seedly/internal/httpserver"
	"github.com/camposjoaoc/Seedly/internal/pagesession"
	"github.com/camposjoaoc/Seedly/internal/productgrid"
	"github.com/camposjoaoc/Seedly/internal/viewport"
)

// CSRF names used by the test server.
const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithCatalog serves products from the given source.
func WithCatalog(source catalog.Source) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Catalog = source
	}
}

// WithProducts serves a fixed product list.
func WithProducts(products []catalog.Product) ServerOption {
	return WithCatalog(catalog.New(products))
}

// WithCursorStore overrides the shared cursor store.
func WithCursorStore(store productgrid.CursorStore) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.CursorStore = store
	}
}

// WithSessions overrides the page-session manager.
func WithSessions(manager *pagesession.Manager) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Sessions = manager
	}
}

// WithSmallViewport forces every request to be classified as a small viewport.
func WithSmallViewport(small bool) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Viewport = viewport.ClassifierFunc(func(*http.Request) bool { return small })
	}
}

// NewServer constructs an httptest server running the storefront HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:        ":0",
		CSRFCookieName: CSRFCookieName,
		CSRFHeaderName: CSRFHeaderName,
		Catalog:        catalog.New(catalog.StaticProducts()),
		CursorStore:    productgrid.NewMemoryStore(productgrid.DefaultCursorTTL),
		Steps:          productgrid.DefaultSteps(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

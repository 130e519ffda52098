package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/camposjoaoc/Seedly/internal/catalog"
	custommw "github.com/camposjoaoc/Seedly/internal/httpserver/middleware"
	"github.com/camposjoaoc/Seedly/internal/httpserver/ui"
	"github.com/camposjoaoc/Seedly/internal/observability"
	"github.com/camposjoaoc/Seedly/internal/pagesession"
	"github.com/camposjoaoc/Seedly/internal/productgrid"
	"github.com/camposjoaoc/Seedly/internal/templates"
	"github.com/camposjoaoc/Seedly/internal/viewport"
	"github.com/camposjoaoc/Seedly/public"
)

const (
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultHandlerTimeout = 20 * time.Second
)

// Config holds runtime options and collaborators for the storefront HTTP server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Logger       *zap.Logger

	CSRFCookieName   string
	CSRFCookieSecure bool
	CSRFHeaderName   string

	Catalog      catalog.Source
	Filter       *productgrid.Filter
	CursorStore  productgrid.CursorStore
	Sessions     *pagesession.Manager
	Viewport     viewport.Classifier
	Steps        productgrid.Steps
	ScrollOffset int
	ScrollDelay  time.Duration
	Cards        templates.CardRenderer
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	handlers, err := ui.NewHandlers(ui.Dependencies{
		Catalog:      cfg.Catalog,
		Filter:       cfg.Filter,
		CursorStore:  cfg.CursorStore,
		Sessions:     cfg.Sessions,
		Viewport:     cfg.Viewport,
		Steps:        cfg.Steps,
		ScrollOffset: cfg.ScrollOffset,
		ScrollDelay:  cfg.ScrollDelay,
		Cards:        cfg.Cards,
		CSRFHeader:   cfg.CSRFHeaderName,
	})
	if err != nil {
		return nil, fmt.Errorf("httpserver: ui handlers: %w", err)
	}

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.RequestLogger(logger))
	router.Use(observability.Recovery(logger))
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(defaultHandlerTimeout))

	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	router.Get("/healthz", handlers.Healthz)

	mountStorefrontRoutes(router, handlers, custommw.CSRFConfig{
		CookieName: cfg.CSRFCookieName,
		HeaderName: cfg.CSRFHeaderName,
		Secure:     cfg.CSRFCookieSecure,
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout: durationOr(cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  durationOr(cfg.IdleTimeout, defaultIdleTimeout),
		ErrorLog:     zap.NewStdLog(logger),
	}, nil
}

func mountStorefrontRoutes(router chi.Router, h *ui.Handlers, csrf custommw.CSRFConfig) {
	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.ClientHints())
		r.Use(custommw.CSRF(csrf))

		r.Get("/", h.Index)
		r.Get("/products", h.ProductsPage)
		RegisterFragment(r, templates.GridPath, h.GridFragment)
		r.With(custommw.RequireHTMX()).Post(templates.ShowMorePath, h.ShowMore)
	})
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/camposjoaoc/Seedly/internal/catalog"
	"github.com/camposjoaoc/Seedly/internal/config"
	"github.com/camposjoaoc/Seedly/internal/httpserver"
	"github.com/camposjoaoc/Seedly/internal/observability"
	"github.com/camposjoaoc/Seedly/internal/pagesession"
	"github.com/camposjoaoc/Seedly/internal/productgrid"
	"github.com/camposjoaoc/Seedly/internal/viewport"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", invalid.Fields())
		} else {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		}
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		_ = baseLogger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	renderer := catalog.NewDescriptionRenderer()
	cat, err := buildCatalog(cfg.Catalog, renderer)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		zap.String("source", catalogSource(cfg.Catalog)),
		zap.Int("products", len(cat.Snapshot().Products)),
	)

	sessions, err := pagesession.NewManager(pagesession.Config{
		HashKey:  []byte(cfg.Page.HashKey),
		BlockKey: []byte(cfg.Page.BlockKey),
		Lifetime: cfg.Grid.CursorTTL,
	})
	if err != nil {
		return fmt.Errorf("page sessions: %w", err)
	}
	if cfg.Page.HashKey == "" {
		logger.Warn("page hash key not set; tokens will not survive a restart")
	}

	group, groupCtx := errgroup.WithContext(ctx)

	store, closeStore, err := buildCursorStore(groupCtx, group, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := httpserver.New(httpserver.Config{
		Address:          cfg.Server.Address,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		IdleTimeout:      cfg.Server.IdleTimeout,
		Logger:           logger.Named("http"),
		CSRFCookieName:   cfg.CSRF.CookieName,
		CSRFCookieSecure: cfg.CSRF.CookieSecure,
		CSRFHeaderName:   cfg.CSRF.HeaderName,
		Catalog:          cat,
		Filter:           productgrid.NewFilter(),
		CursorStore:      store,
		Sessions:         sessions,
		Viewport:         viewport.HeaderClassifier{Breakpoint: cfg.Grid.Breakpoint},
		Steps:            productgrid.Steps{Small: cfg.Grid.StepSmall, Large: cfg.Grid.StepLarge},
		ScrollOffset:     cfg.Grid.ScrollOffset,
		ScrollDelay:      cfg.Grid.ScrollDelay,
	})
	if err != nil {
		return err
	}

	if cfg.Catalog.Watch {
		group.Go(func() error {
			return catalog.Watch(groupCtx, cat, catalog.WatchConfig{
				Path:     cfg.Catalog.File,
				Renderer: renderer,
				Logger:   logger.Named("catalog"),
			})
		})
	}

	group.Go(func() error {
		logger.Info("storefront listening", zap.String("addr", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("storefront stopped")
		return nil
	})

	return group.Wait()
}

func buildCatalog(cfg config.CatalogConfig, renderer *catalog.DescriptionRenderer) (*catalog.Catalog, error) {
	if cfg.File == "" {
		products := catalog.StaticProducts()
		if err := renderer.Apply(products); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		return catalog.New(products), nil
	}
	products, err := catalog.LoadFile(cfg.File, renderer)
	if err != nil {
		return nil, err
	}
	return catalog.New(products), nil
}

func catalogSource(cfg config.CatalogConfig) string {
	if cfg.File == "" {
		return "builtin"
	}
	return cfg.File
}

// buildCursorStore returns the shared cursor store. Redis is used when an address is
// configured; otherwise an in-process store swept in the background.
func buildCursorStore(ctx context.Context, group *errgroup.Group, cfg config.Config, logger *zap.Logger) (productgrid.CursorStore, func(), error) {
	if cfg.Redis.Addr == "" {
		store := productgrid.NewMemoryStore(cfg.Grid.CursorTTL)
		group.Go(func() error {
			return store.RunSweeper(ctx, cfg.Grid.CursorTTL/4)
		})
		logger.Info("cursor store: memory", zap.Duration("ttl", cfg.Grid.CursorTTL))
		return store, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("cursor store: redis", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Grid.CursorTTL))

	store := productgrid.NewRedisStore(client, cfg.Grid.CursorTTL, productgrid.WithRedisLogger(logger.Named("cursor")))
	return store, func() {
		if err := client.Close(); err != nil {
			logger.Warn("redis close error", zap.Error(err))
		}
	}, nil
}

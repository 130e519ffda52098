package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultAddress      = ":8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	defaultLogLevel     = "info"
	defaultStepSmall    = 3
	defaultStepLarge    = 8
	defaultScrollOffset = 100
	defaultScrollDelay  = 300 * time.Millisecond
	defaultCursorTTL    = 2 * time.Hour
	defaultBreakpoint   = 768
	defaultCSRFCookie   = "seedly_csrf"
	defaultCSRFHeader   = "X-CSRF-Token"

	envPrefix = "SEEDLY_"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Catalog CatalogConfig
	Grid    GridConfig
	Redis   RedisConfig
	Page    PageConfig
	CSRF    CSRFConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// CatalogConfig points at the product seed file. An empty File uses the built-in catalogue.
type CatalogConfig struct {
	File  string
	Watch bool
}

// GridConfig tunes product grid pagination and the post-expansion scroll.
type GridConfig struct {
	StepSmall    int
	StepLarge    int
	Breakpoint   int
	ScrollOffset int
	ScrollDelay  time.Duration
	CursorTTL    time.Duration
}

// RedisConfig enables the shared cursor store when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PageConfig holds page-session signing keys. Empty keys are generated per process.
type PageConfig struct {
	HashKey  string
	BlockKey string
}

// CSRFConfig controls the double-submit cookie.
type CSRFConfig struct {
	CookieName   string
	HeaderName   string
	CookieSecure bool
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loader)

type loader struct {
	envFile   string
	overrides map[string]string
	systemEnv bool
	dotEnv    map[string]string
}

// WithEnvFile overrides the .env file path; an empty path skips the file.
func WithEnvFile(path string) Option {
	return func(l *loader) { l.envFile = path }
}

// WithEnvMap injects values that win over every other source.
func WithEnvMap(values map[string]string) Option {
	return func(l *loader) { l.overrides = values }
}

// WithoutSystemEnv stops Load from reading the process environment.
func WithoutSystemEnv() Option {
	return func(l *loader) { l.systemEnv = false }
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and the explicit map, in increasing order of precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	l := &loader{envFile: defaultEnvFile, systemEnv: true}
	for _, opt := range opts {
		opt(l)
	}
	dotEnv, err := readDotEnv(l.envFile)
	if err != nil {
		return Config{}, err
	}
	l.dotEnv = dotEnv

	cfg := Config{
		Server: ServerConfig{
			Address:      l.str("HTTP_ADDR", defaultAddress),
			ReadTimeout:  l.duration("SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: l.duration("SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  l.duration("SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Log: LogConfig{
			Level: strings.ToLower(l.str("LOG_LEVEL", defaultLogLevel)),
		},
		Catalog: CatalogConfig{
			File:  l.str("CATALOG_FILE", ""),
			Watch: l.flag("CATALOG_WATCH", false),
		},
		Grid: GridConfig{
			StepSmall:    l.integer("GRID_STEP_SMALL", defaultStepSmall),
			StepLarge:    l.integer("GRID_STEP_LARGE", defaultStepLarge),
			Breakpoint:   l.integer("GRID_BREAKPOINT", defaultBreakpoint),
			ScrollOffset: l.integer("GRID_SCROLL_OFFSET", defaultScrollOffset),
			ScrollDelay:  l.duration("GRID_SCROLL_DELAY", defaultScrollDelay),
			CursorTTL:    l.duration("GRID_CURSOR_TTL", defaultCursorTTL),
		},
		Redis: RedisConfig{
			Addr:     l.str("REDIS_ADDR", ""),
			Password: l.str("REDIS_PASSWORD", ""),
			DB:       l.integer("REDIS_DB", 0),
		},
		Page: PageConfig{
			HashKey:  l.str("PAGE_HASH_KEY", ""),
			BlockKey: l.str("PAGE_BLOCK_KEY", ""),
		},
		CSRF: CSRFConfig{
			CookieName:   l.str("CSRF_COOKIE_NAME", defaultCSRFCookie),
			HeaderName:   l.str("CSRF_HEADER_NAME", defaultCSRFHeader),
			CookieSecure: l.flag("CSRF_COOKIE_SECURE", false),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// lookup resolves SEEDLY_<key>; empty values count as unset.
func (l *loader) lookup(key string) (string, bool) {
	key = envPrefix + key
	if v, ok := l.overrides[key]; ok && v != "" {
		return strings.TrimSpace(v), true
	}
	if l.systemEnv {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return strings.TrimSpace(v), true
		}
	}
	if v, ok := l.dotEnv[key]; ok && v != "" {
		return v, true
	}
	return "", false
}

func (l *loader) str(key, fallback string) string {
	if v, ok := l.lookup(key); ok {
		return v
	}
	return fallback
}

func (l *loader) duration(key string, fallback time.Duration) time.Duration {
	if v, ok := l.lookup(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func (l *loader) integer(key string, fallback int) int {
	if v, ok := l.lookup(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (l *loader) flag(key string, fallback bool) bool {
	v, ok := l.lookup(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}

func validateConfig(cfg Config) error {
	var invalid []string

	if strings.TrimSpace(cfg.Server.Address) == "" {
		invalid = append(invalid, "Server.Address")
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		invalid = append(invalid, "Log.Level")
	}
	if cfg.Catalog.Watch && strings.TrimSpace(cfg.Catalog.File) == "" {
		invalid = append(invalid, "Catalog.File")
	}
	if cfg.Grid.StepSmall <= 0 {
		invalid = append(invalid, "Grid.StepSmall")
	}
	if cfg.Grid.StepLarge <= 0 {
		invalid = append(invalid, "Grid.StepLarge")
	}
	if cfg.Grid.Breakpoint <= 0 {
		invalid = append(invalid, "Grid.Breakpoint")
	}
	if cfg.Grid.ScrollOffset < 0 {
		invalid = append(invalid, "Grid.ScrollOffset")
	}
	if cfg.Grid.ScrollDelay < 0 {
		invalid = append(invalid, "Grid.ScrollDelay")
	}
	if cfg.Grid.CursorTTL <= 0 {
		invalid = append(invalid, "Grid.CursorTTL")
	}
	if cfg.Redis.DB < 0 {
		invalid = append(invalid, "Redis.DB")
	}
	if n := len(cfg.Page.HashKey); n > 0 && n < 16 {
		invalid = append(invalid, "Page.HashKey")
	}
	switch len(cfg.Page.BlockKey) {
	case 0, 16, 24, 32:
	default:
		invalid = append(invalid, "Page.BlockKey")
	}

	if len(invalid) > 0 {
		return &ValidationError{fields: invalid}
	}
	return nil
}

// readDotEnv parses KEY=value lines, ignoring comments and an "export " prefix.
// A missing file is not an error.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	values := make(map[string]string)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "export "))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if key = strings.TrimSpace(key); !ok || key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	return values, nil
}

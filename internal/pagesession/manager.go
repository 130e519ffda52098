// Package pagesession issues signed tokens that identify one rendered product page.
// The grid cursor is keyed by this identity, so it survives grid remounts (filter
// toggles) within the page but starts fresh on a full reload.
package pagesession

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/oklog/ulid/v2"
)

const (
	defaultTokenName = "seedly_page"
	defaultLifetime  = 2 * time.Hour
)

var (
	// ErrInvalidToken indicates the token is missing, malformed or was not signed by this manager.
	ErrInvalidToken = errors.New("pagesession: invalid token")
	// ErrExpired indicates the token is older than the configured lifetime.
	ErrExpired = errors.New("pagesession: expired")
	// ErrInvalidConfig indicates the manager was initialised with unusable keys.
	ErrInvalidConfig = errors.New("pagesession: invalid config")
)

// Config controls token signing and lifetime.
type Config struct {
	Name     string
	HashKey  []byte
	BlockKey []byte
	Lifetime time.Duration
	Now      func() time.Time
}

// Session identifies one page render.
type Session struct {
	ID       string    `json:"id"`
	IssuedAt time.Time `json:"iat"`
}

// Manager encodes and verifies page-session tokens.
type Manager struct {
	name     string
	codec    *securecookie.SecureCookie
	lifetime time.Duration
	now      func() time.Time
}

// NewManager constructs a Manager. Missing keys are replaced with random ones, which
// invalidates outstanding tokens on restart.
func NewManager(cfg Config) (*Manager, error) {
	hashKey := cfg.HashKey
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	if len(hashKey) < 16 {
		return nil, fmt.Errorf("%w: hash key must be at least 16 bytes", ErrInvalidConfig)
	}
	blockKey := cfg.BlockKey
	switch len(blockKey) {
	case 0, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: block key must be 16, 24 or 32 bytes", ErrInvalidConfig)
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultTokenName
	}
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = defaultLifetime
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	// Expiry is checked against IssuedAt with the injected clock.
	codec.MaxAge(0)

	return &Manager{
		name:     name,
		codec:    codec,
		lifetime: lifetime,
		now:      now,
	}, nil
}

// Issue creates a new page session and its signed token.
func (m *Manager) Issue() (Session, string, error) {
	now := m.now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), ulid.DefaultEntropy())
	if err != nil {
		return Session{}, "", fmt.Errorf("pagesession: generate id: %w", err)
	}
	sess := Session{ID: id.String(), IssuedAt: now}
	token, err := m.codec.Encode(m.name, sess)
	if err != nil {
		return Session{}, "", fmt.Errorf("pagesession: encode: %w", err)
	}
	return sess, token, nil
}

// Resolve verifies a token and returns its session.
func (m *Manager) Resolve(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrInvalidToken
	}
	var sess Session
	if err := m.codec.Decode(m.name, token, &sess); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := ulid.ParseStrict(sess.ID); err != nil {
		return Session{}, fmt.Errorf("%w: bad id", ErrInvalidToken)
	}
	if m.now().UTC().Sub(sess.IssuedAt) > m.lifetime {
		return Session{}, ErrExpired
	}
	return sess, nil
}

// ResolveOrIssue returns the session for token, or a fresh one when the token is
// unusable. fresh reports whether a new session was issued.
func (m *Manager) ResolveOrIssue(token string) (sess Session, signed string, fresh bool, err error) {
	if resolved, rerr := m.Resolve(token); rerr == nil {
		return resolved, token, false, nil
	}
	sess, signed, err = m.Issue()
	return sess, signed, true, err
}

package pagesession

import (
	"errors"
	"testing"
	"time"
)

type fixedClock struct {
	current time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.current
}

func newTestManager(t *testing.T) (*Manager, *fixedClock) {
	t.Helper()

	clock := &fixedClock{current: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	mgr, err := NewManager(Config{
		HashKey:  []byte("12345678901234567890123456789012"),
		BlockKey: []byte("abcdefghijklmnopqrstuv0123456789"),
		Lifetime: time.Hour,
		Now:      clock.Now,
	})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	return mgr, clock
}

func TestManager_IssueAndResolve(t *testing.T) {
	mgr, clock := newTestManager(t)

	sess, token, err := mgr.Issue()
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if sess.ID == "" || token == "" {
		t.Fatalf("expected id and token, got %q / %q", sess.ID, token)
	}
	if !sess.IssuedAt.Equal(clock.current) {
		t.Fatalf("unexpected IssuedAt: %v", sess.IssuedAt)
	}

	got, err := mgr.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got.ID != sess.ID {
		t.Fatalf("expected id %q, got %q", sess.ID, got.ID)
	}

	_, other, err := mgr.Issue()
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if other == token {
		t.Fatalf("expected distinct tokens per page")
	}
}

func TestManager_ResolveRejectsTampering(t *testing.T) {
	mgr, _ := newTestManager(t)

	for _, token := range []string{"", "   ", "not-a-token"} {
		if _, err := mgr.Resolve(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}

	foreign, err := NewManager(Config{HashKey: []byte("another-hash-key-of-32-bytes-xxx")})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	_, token, err := foreign.Issue()
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := mgr.Resolve(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected foreign token to be rejected, got %v", err)
	}
}

func TestManager_ResolveExpired(t *testing.T) {
	mgr, clock := newTestManager(t)

	_, token, err := mgr.Issue()
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	clock.current = clock.current.Add(59 * time.Minute)
	if _, err := mgr.Resolve(token); err != nil {
		t.Fatalf("expected token to be valid, got %v", err)
	}

	clock.current = clock.current.Add(2 * time.Minute)
	if _, err := mgr.Resolve(token); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestManager_ResolveOrIssue(t *testing.T) {
	mgr, _ := newTestManager(t)

	sess, token, fresh, err := mgr.ResolveOrIssue("")
	if err != nil || !fresh {
		t.Fatalf("expected fresh session, got fresh=%v err=%v", fresh, err)
	}

	again, sameToken, fresh, err := mgr.ResolveOrIssue(token)
	if err != nil || fresh {
		t.Fatalf("expected existing session, got fresh=%v err=%v", fresh, err)
	}
	if again.ID != sess.ID || sameToken != token {
		t.Fatalf("expected the same session back")
	}
}

func TestNewManager_InvalidKeys(t *testing.T) {
	if _, err := NewManager(Config{HashKey: []byte("short")}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for short hash key, got %v", err)
	}
	if _, err := NewManager(Config{BlockKey: []byte("odd-length")}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for bad block key, got %v", err)
	}
	if _, err := NewManager(Config{}); err != nil {
		t.Fatalf("expected random keys to be generated, got %v", err)
	}
}

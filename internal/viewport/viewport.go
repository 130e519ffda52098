// Package viewport classifies the requesting device as small or large.
package viewport

import (
	"net/http"
	"strconv"
	"strings"
)

// DefaultBreakpoint is the CSS pixel width below which a viewport counts as small.
const DefaultBreakpoint = 768

// ClientHints is the Accept-CH value the product page sends so later requests carry width hints.
const ClientHints = "Sec-CH-UA-Mobile, Sec-CH-Viewport-Width, Viewport-Width"

// Classifier reports whether a request comes from a small viewport.
type Classifier interface {
	IsSmall(r *http.Request) bool
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(*http.Request) bool

// IsSmall calls f(r).
func (f ClassifierFunc) IsSmall(r *http.Request) bool { return f(r) }

// HeaderClassifier decides from, in order: an explicit "vw" form or query value,
// the viewport width client hints, the mobile client hint, and the User-Agent.
type HeaderClassifier struct {
	Breakpoint int
}

// IsSmall implements Classifier.
func (c HeaderClassifier) IsSmall(r *http.Request) bool {
	if r == nil {
		return false
	}
	breakpoint := c.Breakpoint
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}

	if width, ok := parseWidth(r.FormValue("vw")); ok {
		return width < breakpoint
	}
	for _, header := range []string{"Sec-CH-Viewport-Width", "Viewport-Width"} {
		if width, ok := parseWidth(r.Header.Get(header)); ok {
			return width < breakpoint
		}
	}
	switch strings.TrimSpace(r.Header.Get("Sec-CH-UA-Mobile")) {
	case "?1":
		return true
	case "?0":
		return false
	}
	return strings.Contains(r.UserAgent(), "Mobi")
}

func parseWidth(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	width, err := strconv.Atoi(raw)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

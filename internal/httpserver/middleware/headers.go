package middleware

import (
	"net/http"

	"github.com/camposjoaoc/Seedly/internal/viewport"
)

// NoStore disables caching for dynamic pages and fragments.
func NoStore() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Cache-Control", "no-store, max-age=0")
			h.Set("Pragma", "no-cache")
			next.ServeHTTP(w, r)
		})
	}
}

// ClientHints asks browsers to send viewport hints on subsequent requests.
func ClientHints() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Accept-CH", viewport.ClientHints)
			h.Add("Vary", viewport.ClientHints)
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXMiddlewareAnnotatesContext(t *testing.T) {
	var got HTMXInfo
	handler := HTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = HTMXInfoFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/products/grid", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "product-grid")
	req.Header.Set("HX-Trigger", "show-more")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !got.IsHTMX {
		t.Fatalf("expected htmx request")
	}
	if got.Target != "product-grid" || got.TriggerID != "show-more" {
		t.Fatalf("unexpected info: %+v", got)
	}
}

func TestRequireHTMX(t *testing.T) {
	handler := HTMX()(RequireHTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/grid", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for direct navigation, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/products/grid", nil)
	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for htmx request, got %d", rr.Code)
	}
	if rr.Header().Get("Vary") != "HX-Request" {
		t.Fatalf("expected Vary header, got %q", rr.Header().Get("Vary"))
	}
}

func TestCSRFMiddleware(t *testing.T) {
	var seen string
	handler := CSRF(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CSRFTokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DefaultCSRFCookieName {
		t.Fatalf("expected csrf cookie, got %+v", cookies)
	}
	token := cookies[0].Value
	if token == "" || seen != token {
		t.Fatalf("expected context token %q to match cookie %q", seen, token)
	}

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products/grid/more", nil)
		req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
	})

	t.Run("mismatched header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products/grid/more", nil)
		req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
		req.Header.Set(DefaultCSRFHeaderName, token+"x")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
	})

	t.Run("matching header passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/products/grid/more", nil)
		req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: token})
		req.Header.Set(DefaultCSRFHeaderName, token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})
}

func TestNoStoreMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	NoStore()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control: %s", got)
	}
	if got := rr.Header().Get("Pragma"); got != "no-cache" {
		t.Fatalf("unexpected Pragma: %s", got)
	}
}

func TestClientHintsMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	ClientHints()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))

	if got := rr.Header().Get("Accept-CH"); !strings.Contains(got, "Sec-CH-Viewport-Width") {
		t.Fatalf("unexpected Accept-CH: %s", got)
	}
}

func TestTriggerAfterSettle(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := TriggerAfterSettle(rr, "grid:scroll", map[string]int{"offset": 100}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rr.Header().Get("HX-Trigger-After-Settle"); got != `{"grid:scroll":{"offset":100}}` {
		t.Fatalf("unexpected header: %s", got)
	}

	if err := TriggerAfterSettle(rr, "bad", make(chan int)); err == nil {
		t.Fatalf("expected encode error")
	}
}

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func noop(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndURL(t *testing.T) {
	r := New()
	r.Get("/api/catalog", "catalog.index", noop)

	admin := r.Group("/api/admin")
	admin.Put("/products/{id}", "admin.products.update", noop)

	path, ok := r.Path("catalog.index")
	if !ok || path != "/api/catalog" {
		t.Errorf("Path = %q, %v", path, ok)
	}

	url, err := r.URL("admin.products.update", map[string]string{"id": "abc123"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/api/admin/products/abc123" {
		t.Errorf("URL = %q", url)
	}

	if _, err := r.URL("admin.products.update", nil); err == nil {
		t.Error("expected error for missing params")
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	r := New()

	var touched bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			touched = true
			next.ServeHTTP(w, req)
		})
	}

	g := r.Group("/api", mw)
	g.Get("/ping", "ping", noop)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !touched {
		t.Error("group middleware never ran")
	}
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/a", "a", noop)
	r.Post("/b", "b", noop)
	r.Delete("/c", "", noop) // unnamed routes are not recorded

	if got := len(r.Routes()); got != 2 {
		t.Errorf("Routes() len = %d, want 2", got)
	}
}

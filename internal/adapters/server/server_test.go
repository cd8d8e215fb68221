package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hylla/syssla/internal/app"
	"github.com/hylla/syssla/internal/domain"
)

func testIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("srv-%d", n)
	}
}

func newTestMux(t *testing.T, seed ...domain.Item) http.Handler {
	t.Helper()
	handler, _, err := NewHandler(Config{}, Dependencies{
		Todos: app.NewStore(nil, testIDs(), seed...),
		IDGen: testIDs(),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return handler
}

func TestNewHandlerRequiresTodoService(t *testing.T) {
	if _, _, err := NewHandler(Config{}, Dependencies{}); err == nil {
		t.Fatal("expected an error for missing todo service")
	}
}

func TestHealthEndpoints(t *testing.T) {
	mux := newTestMux(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"ok"`) {
			t.Fatalf("%s body = %q", path, rec.Body.String())
		}
	}
}

func TestTodosRoutesAreMounted(t *testing.T) {
	mux := newTestMux(t, domain.Item{ID: "a", Text: "one"})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/todos", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /todos status = %d", rec.Code)
	}
	var items []domain.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("unexpected items %+v", items)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/todos/a", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE /todos/a status = %d", rec.Code)
	}
}

func TestNormalizeConfigDefaults(t *testing.T) {
	cfg := normalizeConfig(Config{MCPEndpoint: "mcp///"})
	if cfg.HTTPBind != defaultBindAddress {
		t.Fatalf("unexpected bind %q", cfg.HTTPBind)
	}
	if cfg.MCPEndpoint != "/mcp" {
		t.Fatalf("unexpected mcp endpoint %q", cfg.MCPEndpoint)
	}
	if cfg.ServerName != "syssla" || cfg.ServerVersion != "dev" {
		t.Fatalf("unexpected identity %q %q", cfg.ServerName, cfg.ServerVersion)
	}
}

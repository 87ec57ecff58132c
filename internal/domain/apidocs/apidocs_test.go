package apidocs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_List(t *testing.T) {
	h := NewHandler("0.1.0")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/endpoints", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}

	var listing Listing
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if listing.Version != "0.1.0" {
		t.Errorf("expected version 0.1.0, got %q", listing.Version)
	}

	paths := make(map[string]bool)
	for _, ep := range listing.Endpoints {
		paths[ep.Method+" "+ep.Path] = true
	}
	for _, want := range []string{
		"GET /api/search",
		"POST /api/save",
		"POST /api/auth/login",
		"POST /api/auth/logout",
		"POST /api/auth/extend",
		"GET /api/auth/session",
		"POST /api/audit",
		"GET /api/endpoints",
		"GET /health",
	} {
		if !paths[want] {
			t.Errorf("listing missing %s", want)
		}
	}
}

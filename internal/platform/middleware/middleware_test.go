package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vimalrajaj/ayusconnect/internal/platform/auth"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestID_GeneratesNew(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequestID()(func(c echo.Context) error {
		if rid, _ := c.Get("request_id").(string); rid == "" {
			t.Error("expected request_id on context")
		}
		return okHandler(c)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected request id in response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RequestID()(okHandler)(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Header().Get(RequestIDHeader) != "my-custom-id" {
		t.Errorf("expected my-custom-id in response header, got %s", rec.Header().Get(RequestIDHeader))
	}
}

func TestRecovery_ConvertsPanicToError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic("boom")
	})
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 from recovered panic, got %v", err)
	}
}

func TestRequireToken(t *testing.T) {
	issuer := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), "test")
	token, err := issuer.Issue("sid_1", "user-1", []string{"patient/read"}, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	e := echo.New()
	call := func(authHeader string) error {
		req := httptest.NewRequest(http.MethodPost, "/api/save", nil)
		if authHeader != "" {
			req.Header.Set(echo.HeaderAuthorization, authHeader)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		return RequireToken(issuer)(func(c echo.Context) error {
			claims, _ := c.Get("session_claims").(*auth.SessionClaims)
			if claims == nil || claims.SessionID != "sid_1" {
				t.Errorf("expected claims on context, got %v", claims)
			}
			return okHandler(c)
		})(c)
	}

	if err := call("Bearer " + token); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}

	for _, header := range []string{"", "Bearer ", "Bearer not-a-token", token} {
		err := call(header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %v", header, err)
		}
	}
}

type captureRecorder struct {
	mu      sync.Mutex
	entries []map[string]any
	actions []string
}

func (r *captureRecorder) Record(action, _ string, data map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	r.entries = append(r.entries, data)
}

func TestAccessAudit_RecordsAPIRequests(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/save", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "req-123")

	cap := &captureRecorder{}
	h := AccessAudit(zerolog.Nop(), cap, func() string { return "sid_1" })(okHandler)
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	cap.mu.Lock()
	defer cap.mu.Unlock()
	if len(cap.actions) != 1 || cap.actions[0] != "api_access" {
		t.Fatalf("expected one api_access entry, got %v", cap.actions)
	}
	data := cap.entries[0]
	if data["path"] != "/api/save" || data["method"] != http.MethodPost {
		t.Errorf("unexpected audit data: %v", data)
	}
	if data["action"] != "create" {
		t.Errorf("expected create action for POST, got %v", data["action"])
	}
	if data["requestId"] != "req-123" {
		t.Errorf("expected request id propagated, got %v", data["requestId"])
	}
}

func TestAccessAudit_SkipsNonAPIRoutes(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cap := &captureRecorder{}
	h := AccessAudit(zerolog.Nop(), cap, nil)(okHandler)
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	cap.mu.Lock()
	defer cap.mu.Unlock()
	if len(cap.actions) != 0 {
		t.Errorf("health probe must not be audited, got %v", cap.actions)
	}
}

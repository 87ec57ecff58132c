package terminology

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func doSearch(t *testing.T, h *Handler, target string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h.Search(c)
}

func TestHandler_SearchLocal(t *testing.T) {
	h := NewHandler(newTestService(t), nil, zerolog.Nop())

	rec, err := doSearch(t, h, "/api/search?query=fever")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var results []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	first := results[0]
	if first["namaste_code"] != "A01" || first["icd10_code"] != "MG50" {
		t.Errorf("unexpected first result: %v", first)
	}
	if _, ok := first["searchScore"]; !ok {
		t.Error("expected searchScore in response")
	}
}

func TestHandler_SearchRejectsShortQuery(t *testing.T) {
	h := NewHandler(newTestService(t), nil, zerolog.Nop())

	_, err := doSearch(t, h, "/api/search?query=f")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_SearchAcceptsQAlias(t *testing.T) {
	h := NewHandler(newTestService(t), nil, zerolog.Nop())

	rec, err := doSearch(t, h, "/api/search?q=fever")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_SearchPrefersRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"namaste_code":"R01","diagnosis":"Remote result","icd10_code":"XX00","icd_diagnosis_name":"Remote"}]`))
	}))
	defer srv.Close()

	h := NewHandler(newTestService(t), NewRemoteClient(srv.URL), zerolog.Nop())

	rec, err := doSearch(t, h, "/api/search?query=fever")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var results []SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) != 1 || results[0].NamasteCode != "R01" {
		t.Errorf("expected remote results, got %+v", results)
	}
}

func TestHandler_SearchFallsBackWhenRemoteDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	h := NewHandler(newTestService(t), NewRemoteClient(srv.URL), zerolog.Nop())

	rec, err := doSearch(t, h, "/api/search?query=fever")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var results []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected local fallback results")
	}
	if results[0]["namaste_code"] != "A01" {
		t.Errorf("expected local A01, got %v", results[0])
	}
}

func TestHandler_Lookup(t *testing.T) {
	h := NewHandler(newTestService(t), nil, zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/terminology/A01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues("A01")

	if err := h.Lookup(c); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	var got Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.DisplayEnglish != "Fever" {
		t.Errorf("unexpected record: %+v", got)
	}

	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/terminology/ZZ", nil), httptest.NewRecorder())
	c2.SetParamNames("code")
	c2.SetParamValues("ZZ")
	err := h.Lookup(c2)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

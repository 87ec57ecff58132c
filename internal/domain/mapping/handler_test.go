package mapping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_Save(t *testing.T) {
	svc := NewService(NewMemRepo(), &stubResolver{known: map[string]bool{"A01": true}}, nil)
	h := NewHandler(svc, func() string { return "sid_1" })

	e := echo.New()
	post := func(body string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/api/save", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return rec, h.Save(e.NewContext(req, rec))
	}

	rec, err := post(`{"patientId":"P-1001","visitId":"V-2002","namasteCode":"A01","icd10Code":"MG50"}`)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	var resp SaveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("expected success, got %+v", resp)
	}

	_, err = post(`{"patientId":"P-1001"}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %v", err)
	}

	_, err = post(`{"patientId":"P-1001","visitId":"V-2002","namasteCode":"ZZ99","icd10Code":"MG50"}`)
	he, ok = err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown code, got %v", err)
	}
}

func TestHandler_History(t *testing.T) {
	svc := NewService(NewMemRepo(), &stubResolver{known: map[string]bool{"A01": true}}, nil)
	h := NewHandler(svc, nil)

	if _, err := svc.Save(context.Background(), validRequest(), ""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/mappings/P-1001", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("patientId")
	c.SetParamValues("P-1001")

	if err := h.History(c); err != nil {
		t.Fatalf("History: %v", err)
	}
	var got []*SavedMapping
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 mapping, got %d", len(got))
	}
}

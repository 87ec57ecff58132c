// Package apidocs serves a machine-readable listing of the public API
// surface so integrating EMR vendors can discover it without docs access.
package apidocs

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Endpoint documents one route of the public API.
type Endpoint struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params,omitempty"`
}

// Listing is the response for GET /api/endpoints.
type Listing struct {
	Service   string     `json:"service"`
	Version   string     `json:"version"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Handler serves the endpoint listing.
type Handler struct {
	listing Listing
}

// NewHandler builds the handler with the fixed endpoint catalog.
func NewHandler(version string) *Handler {
	return &Handler{listing: Listing{
		Service: "AyushConnect Terminology Service",
		Version: version,
		Endpoints: []Endpoint{
			{
				Method:      http.MethodGet,
				Path:        "/api/search",
				Description: "Search NAMASTE terminology with ICD-11 TM2 mappings",
				Params: map[string]string{
					"query":  "search text, minimum 2 characters",
					"filter": "ayurveda | siddha | unani | all",
					"limit":  "maximum results, default 10",
				},
			},
			{
				Method:      http.MethodGet,
				Path:        "/api/terminology/{code}",
				Description: "Fetch a single catalog record by NAMASTE code",
			},
			{
				Method:      http.MethodPost,
				Path:        "/api/save",
				Description: "Save a dual-coded diagnosis mapping to a patient visit",
				Params: map[string]string{
					"patientId":   "patient identifier",
					"visitId":     "visit identifier",
					"namasteCode": "NAMASTE code being mapped",
					"icd10Code":   "ICD code selected for the mapping",
				},
			},
			{
				Method:      http.MethodGet,
				Path:        "/api/mappings/{patientId}",
				Description: "List saved diagnosis mappings for a patient, newest first",
				Params: map[string]string{
					"limit": "maximum results, default 20",
				},
			},
			{
				Method:      http.MethodPost,
				Path:        "/api/auth/login",
				Description: "Authenticate with ABHA credentials or an OAuth token",
			},
			{
				Method:      http.MethodPost,
				Path:        "/api/auth/logout",
				Description: "End the current session; requires confirm=true",
			},
			{
				Method:      http.MethodPost,
				Path:        "/api/auth/extend",
				Description: "Extend the current session by the requested minutes",
			},
			{
				Method:      http.MethodGet,
				Path:        "/api/auth/session",
				Description: "Current session state and remaining time",
			},
			{
				Method:      http.MethodPost,
				Path:        "/api/audit",
				Description: "Submit audit trail entries",
			},
			{
				Method:      http.MethodGet,
				Path:        "/api/endpoints",
				Description: "This listing",
			},
			{
				Method:      http.MethodGet,
				Path:        "/health",
				Description: "Liveness probe",
			},
		},
	}}
}

// RegisterRoutes registers the listing route on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/endpoints", h.List)
}

// List handles GET /api/endpoints.
func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.listing)
}

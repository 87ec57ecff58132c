package audit

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler exposes the audit ingestion endpoint: the server side of the
// recorder's HTTP sink.
type Handler struct {
	repo Repository
}

// NewHandler creates an audit handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers audit routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/audit", h.Ingest)
}

type ingestRequest struct {
	Entries []Entry `json:"entries"`
}

type ingestResponse struct {
	Status   string `json:"status"`
	Accepted int    `json:"accepted"`
}

// Ingest handles POST /api/audit. Entries missing an action are rejected as
// a batch; missing ids, timestamps, and session ids are filled in.
func (h *Handler) Ingest(c echo.Context) error {
	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Entries) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "entries are required")
	}

	now := time.Now().UTC()
	for i := range req.Entries {
		e := &req.Entries[i]
		if e.Action == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "entry action is required")
		}
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = now
		}
		if e.SessionID == "" {
			e.SessionID = AnonymousSession
		}
	}

	if err := h.repo.Insert(c.Request().Context(), req.Entries); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ingestResponse{Status: "success", Accepted: len(req.Entries)})
}

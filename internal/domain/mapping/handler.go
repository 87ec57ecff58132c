package mapping

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler exposes the mapping write surface.
type Handler struct {
	svc *Service
	sid func() string
}

// NewHandler creates a mapping handler. sid resolves the current session
// id for audit attribution and may be nil.
func NewHandler(svc *Service, sid func() string) *Handler {
	return &Handler{svc: svc, sid: sid}
}

// RegisterRoutes registers mapping routes on the API group. Middleware, such
// as bearer-token enforcement, applies to all mapping routes.
func (h *Handler) RegisterRoutes(api *echo.Group, mw ...echo.MiddlewareFunc) {
	api.POST("/save", h.Save, mw...)
	api.GET("/mappings/:patientId", h.History, mw...)
}

// Save handles POST /api/save.
func (h *Handler) Save(c echo.Context) error {
	var req SaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sessionID := ""
	if h.sid != nil {
		sessionID = h.sid()
	}

	resp, err := h.svc.Save(c.Request().Context(), req, sessionID)
	switch {
	case errors.Is(err, ErrMissingField):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownCode):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save mapping")
	}
	return c.JSON(http.StatusOK, resp)
}

// History handles GET /api/mappings/:patientId.
func (h *Handler) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	results, err := h.svc.History(c.Request().Context(), c.Param("patientId"), limit)
	if errors.Is(err, ErrMissingField) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list mappings")
	}
	if results == nil {
		results = []*SavedMapping{}
	}
	return c.JSON(http.StatusOK, results)
}

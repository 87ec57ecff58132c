package terminology

import (
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler provides the REST search surface over the catalog. When a remote
// peer is configured, searches go there first and fall back to the local
// catalog only when the peer is unreachable; connectivity failure is never
// reported as an empty result set.
type Handler struct {
	svc    *Service
	remote *RemoteClient
	logger zerolog.Logger
}

// NewHandler creates a terminology handler. remote may be nil for
// local-only deployments.
func NewHandler(svc *Service, remote *RemoteClient, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, remote: remote, logger: logger}
}

// RegisterRoutes registers terminology routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/search", h.Search)
	api.GET("/terminology/:code", h.Lookup)
}

func getLimit(c echo.Context) int {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}

// Search handles GET /api/search?query=...&filter=...&limit=...
// The response carries the peer wire shape plus the relevance score.
func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		query = c.QueryParam("q")
	}
	if utf8.RuneCountInString(query) < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, ErrQueryTooShort.Error())
	}

	if h.remote != nil {
		results, err := h.remote.Search(c.Request().Context(), query)
		if err == nil {
			return c.JSON(http.StatusOK, results)
		}
		if !errors.Is(err, ErrUnavailable) {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		h.logger.Warn().Err(err).Msg("remote terminology search unavailable, using local catalog")
	}

	results, err := h.svc.Search(c.Request().Context(), query, c.QueryParam("filter"), getLimit(c))
	if errors.Is(err, ErrQueryTooShort) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]map[string]any, 0, len(results))
	for _, r := range results {
		out = append(out, map[string]any{
			"namaste_code":       r.Code,
			"diagnosis":          r.DisplayEnglish,
			"diagnosis_local":    r.DisplayLocal,
			"system_type":        r.System,
			"icd10_code":         r.MappedCode,
			"icd_diagnosis_name": r.MappedDisplay,
			"confidence":         r.Confidence,
			"searchScore":        r.Score,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Lookup handles GET /api/terminology/:code
func (h *Handler) Lookup(c echo.Context) error {
	rec, err := h.svc.Lookup(c.Request().Context(), c.Param("code"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "code not found")
	}
	return c.JSON(http.StatusOK, rec)
}

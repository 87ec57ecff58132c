package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vimalrajaj/ayusconnect/internal/platform/auth"
)

// Handler exposes the session lifecycle over HTTP.
type Handler struct {
	mgr *Manager
}

// NewHandler creates a session handler.
func NewHandler(mgr *Manager) *Handler {
	return &Handler{mgr: mgr}
}

// RegisterRoutes registers auth routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.POST("/extend", h.Extend)
	authGroup.GET("/session", h.Session)
}

// sessionView is the client-facing session shape; the license is masked and
// the signed token is only returned at login.
type sessionView struct {
	ID            string        `json:"id"`
	AuthType      auth.Method   `json:"authType"`
	User          auth.Identity `json:"user"`
	LicenseNumber string        `json:"licenseNumber"`
	Scopes        []string      `json:"scopes"`
	CreatedAt     time.Time     `json:"createdAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	LastActivity  time.Time     `json:"lastActivity"`
	Token         string        `json:"token,omitempty"`
}

func newSessionView(s *Session, includeToken bool) sessionView {
	v := sessionView{
		ID:            s.ID,
		AuthType:      s.AuthType,
		User:          s.User,
		LicenseNumber: auth.MaskLicense(s.LicenseNumber),
		Scopes:        s.Scopes,
		CreatedAt:     s.CreatedAt,
		ExpiresAt:     s.ExpiresAt,
		LastActivity:  s.LastActivity,
	}
	v.User.ABHAID = auth.MaskABHAID(s.User.ABHAID)
	if includeToken {
		v.Token = s.Token
	}
	return v
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s, err := h.mgr.Login(c.Request().Context(), req)
	switch {
	case errors.Is(err, ErrConsentRequired), errors.Is(err, ErrInvalidLicense):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		// Deliberately generic: unknown identity and wrong secret are
		// indistinguishable to the caller.
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newSessionView(s, true))
}

type logoutRequest struct {
	Confirm bool `json:"confirm"`
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(c echo.Context) error {
	var req logoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.mgr.Logout(c.Request().Context(), req.Confirm)
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged_out"})
}

type extendRequest struct {
	Minutes int `json:"minutes"`
}

// Extend handles POST /api/auth/extend.
func (h *Handler) Extend(c echo.Context) error {
	var req extendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	s, err := h.mgr.Extend(c.Request().Context(), req.Minutes)
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newSessionView(s, false))
}

// Session handles GET /api/auth/session: the current session with a
// presentational countdown.
func (h *Handler) Session(c echo.Context) error {
	s := h.mgr.Current()
	if s == nil || !h.mgr.IsAuthenticated() {
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}
	view := newSessionView(s, false)
	return c.JSON(http.StatusOK, map[string]any{
		"session":          view,
		"remainingSeconds": int(h.mgr.Remaining().Seconds()),
	})
}

package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// AccessRecorder receives one entry per audited API request.
type AccessRecorder interface {
	Record(action, sessionID string, data map[string]any)
}

// AccessAudit returns middleware that records every /api/* request into
// the audit trail: who, what path, from where, and the response status.
// Health and static routes are not audited. sid resolves the current
// session id and may be nil for unauthenticated deployments.
func AccessAudit(logger zerolog.Logger, rec AccessRecorder, sid func() string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			if !strings.HasPrefix(path, "/api/") {
				return next(c)
			}

			err := next(c)

			sessionID := ""
			if sid != nil {
				sessionID = sid()
			}
			rid, _ := c.Get("request_id").(string)

			if rec != nil {
				rec.Record("api_access", sessionID, map[string]any{
					"method":    req.Method,
					"path":      path,
					"action":    methodToAction(req.Method),
					"status":    c.Response().Status,
					"remoteIp":  c.RealIP(),
					"userAgent": req.UserAgent(),
					"requestId": rid,
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
			}

			logger.Info().
				Str("type", "api_audit").
				Str("request_id", rid).
				Str("session_id", sessionID).
				Str("method", req.Method).
				Str("path", path).
				Int("status", c.Response().Status).
				Str("remote_ip", c.RealIP()).
				Msg("api_access")

			return err
		}
	}
}

func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

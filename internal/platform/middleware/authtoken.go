package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/vimalrajaj/ayusconnect/internal/platform/auth"
)

// TokenVerifier validates a bearer session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// RequireToken rejects requests that do not carry a valid Bearer session
// token. Verified claims are exposed on the context as "session_claims".
func RequireToken(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			c.Set("session_claims", claims)
			return next(c)
		}
	}
}

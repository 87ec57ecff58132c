package session

import (
	"time"

	"github.com/vimalrajaj/ayusconnect/internal/platform/auth"
)

// StorageKey is the single slot sessions are persisted under. At most one
// session is active per storage scope at a time.
const StorageKey = "ayush_auth_session"

// Session is one authenticated unit of application access with a bounded
// lifetime. The JSON field names are the persisted wire shape.
type Session struct {
	ID            string        `json:"id"`
	AuthType      auth.Method   `json:"authType"`
	User          auth.Identity `json:"user"`
	LicenseNumber string        `json:"licenseNumber"`
	AuditConsent  bool          `json:"auditConsent"`
	Token         string        `json:"token"`
	Scopes        []string      `json:"scopes"`
	CreatedAt     time.Time     `json:"createdAt"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	LastActivity  time.Time     `json:"lastActivity"`
}

// HasScope reports whether the session carries the given capability tag.
func (s *Session) HasScope(scope string) bool {
	for _, sc := range s.Scopes {
		if sc == scope {
			return true
		}
	}
	return false
}

// State is the lifecycle state of the managed session.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateActive          State = "active"
	// StateWarning is a sub-state of Active: the session is still valid but
	// inside the warning threshold before expiry.
	StateWarning State = "warning"
	StateExpired State = "expired"
)

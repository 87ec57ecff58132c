// Package auth provides credential verification and format validation for
// the terminology bridge. The session state machine depends only on the
// Verifier interface; how credentials are actually checked is an injected
// concern.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is the single rejection error for failed
// verification. Unknown identities and wrong secrets are deliberately not
// distinguished to avoid leaking which one was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Method selects the authentication mechanism.
type Method string

const (
	MethodABHA  Method = "abha"
	MethodOAuth Method = "oauth"
)

// Credentials carries everything a login attempt supplies.
type Credentials struct {
	Method     Method
	ABHAID     string
	Password   string
	OAuthToken string
}

// Identity describes a verified user.
type Identity struct {
	ID        string   `json:"id,omitempty"`
	ABHAID    string   `json:"abhaId,omitempty"`
	Name      string   `json:"name"`
	Role      string   `json:"role,omitempty"`
	Specialty string   `json:"specialty,omitempty"`
	License   string   `json:"license,omitempty"`
	Scopes    []string `json:"-"`
}

// Verifier checks credentials against an identity provider. Implementations
// must return ErrInvalidCredentials for any rejection.
type Verifier interface {
	Verify(ctx context.Context, creds Credentials) (*Identity, error)
}

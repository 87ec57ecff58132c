package auth

import "context"

// OAuthGrant is one entry in an OAuth token table: the identity and scopes a
// bearer token grants.
type OAuthGrant struct {
	Identity Identity
	Scopes   []string
}

// OAuthVerifier verifies opaque bearer tokens against a token table.
type OAuthVerifier struct {
	tokens map[string]OAuthGrant
}

// NewOAuthVerifier creates a verifier over the given token table.
func NewOAuthVerifier(tokens map[string]OAuthGrant) *OAuthVerifier {
	return &OAuthVerifier{tokens: tokens}
}

// Verify implements Verifier.
func (v *OAuthVerifier) Verify(_ context.Context, creds Credentials) (*Identity, error) {
	if !ValidOAuthToken(creds.OAuthToken) {
		return nil, ErrInvalidCredentials
	}
	grant, ok := v.tokens[creds.OAuthToken]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	identity := grant.Identity
	identity.Scopes = grant.Scopes
	return &identity, nil
}

// MethodVerifier routes credentials to a per-method Verifier.
type MethodVerifier struct {
	verifiers map[Method]Verifier
}

// NewMethodVerifier builds a router over per-method verifiers.
func NewMethodVerifier(verifiers map[Method]Verifier) *MethodVerifier {
	return &MethodVerifier{verifiers: verifiers}
}

// Verify implements Verifier. Unknown methods are rejected like any other
// bad credential.
func (v *MethodVerifier) Verify(ctx context.Context, creds Credentials) (*Identity, error) {
	inner, ok := v.verifiers[creds.Method]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return inner.Verify(ctx, creds)
}

// DemoOAuthTokens returns the built-in development token table.
func DemoOAuthTokens() map[string]OAuthGrant {
	return map[string]OAuthGrant{
		"ayush_oauth2_admin_2024_secure_token": {
			Identity: Identity{ID: "admin_001", Name: "System Administrator", Role: "admin"},
			Scopes:   []string{"read:patient_data", "write:diagnosis", "access:namaste_api", "admin:system"},
		},
		"ayush_oauth2_doctor_2024_secure_token": {
			Identity: Identity{ID: "doc_001", Name: "Dr. Generic User", Role: "doctor"},
			Scopes:   []string{"read:patient_data", "write:diagnosis", "access:namaste_api"},
		},
		"ayush_oauth2_research_2024_secure_token": {
			Identity: Identity{ID: "res_001", Name: "Research User", Role: "researcher"},
			Scopes:   []string{"read:patient_data", "access:namaste_api"},
		},
	}
}

package auth

import (
	"context"
	"crypto/subtle"
)

// ABHAAccount is one entry in an ABHA directory: the shared secret and the
// identity it authenticates.
type ABHAAccount struct {
	Password string
	Identity Identity
}

// ABHAVerifier verifies ABHA id + password credentials against a directory.
// The directory is supplied at construction; production deployments back it
// with the ABDM gateway, development uses DemoABHADirectory.
type ABHAVerifier struct {
	directory map[string]ABHAAccount
}

// NewABHAVerifier creates a verifier over the given directory.
func NewABHAVerifier(directory map[string]ABHAAccount) *ABHAVerifier {
	return &ABHAVerifier{directory: directory}
}

// Verify implements Verifier. Format violations and failed lookups both
// collapse into ErrInvalidCredentials.
func (v *ABHAVerifier) Verify(_ context.Context, creds Credentials) (*Identity, error) {
	if !ValidABHAID(creds.ABHAID) {
		return nil, ErrInvalidCredentials
	}
	account, ok := v.directory[creds.ABHAID]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(account.Password), []byte(creds.Password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	identity := account.Identity
	identity.ABHAID = creds.ABHAID
	return &identity, nil
}

// DemoABHADirectory returns the built-in development directory.
func DemoABHADirectory() map[string]ABHAAccount {
	return map[string]ABHAAccount{
		"91-2024-1234-5678": {
			Password: "Demo@2024",
			Identity: Identity{Name: "Dr. Rajesh Kumar", Specialty: "Ayurveda", License: "AYUSH/MH/2024/001234"},
		},
		"91-2024-2345-6789": {
			Password: "Demo@2024",
			Identity: Identity{Name: "Dr. Priya Sharma", Specialty: "Siddha", License: "AYUSH/DL/2024/005678"},
		},
		"91-2024-3456-7890": {
			Password: "Demo@2024",
			Identity: Identity{Name: "Dr. Ahmed Ali", Specialty: "Unani", License: "AYUSH/KA/2024/009012"},
		},
	}
}

package auth

import (
	"regexp"
	"strings"
)

var (
	abhaIDPattern  = regexp.MustCompile(`^\d{2}-\d{4}-\d{4}-\d{4}$`)
	oauthPattern   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	licensePattern = regexp.MustCompile(`^AYUSH/[A-Z]{2}/\d{4}/\d{6}$`)
)

// ValidABHAID reports whether id matches the XX-XXXX-XXXX-XXXX format.
func ValidABHAID(id string) bool {
	return abhaIDPattern.MatchString(id)
}

// ValidOAuthToken reports whether the token is at least 20 characters of
// alphanumerics and underscores.
func ValidOAuthToken(token string) bool {
	return len(token) >= 20 && oauthPattern.MatchString(token)
}

// ValidLicense reports whether the license matches AYUSH/<state>/<year>/<serial>:
// a fixed AYUSH prefix, 2 uppercase letters, 4 digits, 6 digits.
func ValidLicense(license string) bool {
	return licensePattern.MatchString(license)
}

// MaskLicense hides the serial segment of a license for logs and display.
func MaskLicense(license string) string {
	if license == "" {
		return ""
	}
	parts := strings.Split(license, "/")
	if len(parts) == 4 {
		return parts[0] + "/" + parts[1] + "/" + parts[2] + "/******"
	}
	return "******"
}

// MaskABHAID hides the trailing digits of an ABHA id for logs and display.
func MaskABHAID(id string) string {
	if len(id) < 8 {
		return ""
	}
	return id[:8] + "****-****"
}

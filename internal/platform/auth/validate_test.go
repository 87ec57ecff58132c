package auth

import "testing"

func TestValidABHAID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"91-2024-1234-5678", true},
		{"912024-1234-5678", false},
		{"91-2024-1234-567", false},
		{"91-2024-1234-56789", false},
		{"ab-2024-1234-5678", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidABHAID(tc.id); got != tc.want {
			t.Errorf("ValidABHAID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestValidOAuthToken(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"ayush_oauth2_admin_2024_secure_token", true},
		{"short_token", false},
		{"this_token_is_long_enough_but_has-dash", false},
		{"has spaces in this long token value", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidOAuthToken(tc.token); got != tc.want {
			t.Errorf("ValidOAuthToken(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestValidLicense(t *testing.T) {
	cases := []struct {
		license string
		want    bool
	}{
		{"AYUSH/MH/2024/001234", true},
		{"AYUSH/123/2024/000001", false},
		{"AYUSH/mh/2024/001234", false},
		{"AYUSH/MH/24/001234", false},
		{"AYUSH/MH/2024/1234", false},
		{"CCIM/MH/2024/001234", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidLicense(tc.license); got != tc.want {
			t.Errorf("ValidLicense(%q) = %v, want %v", tc.license, got, tc.want)
		}
	}
}

func TestMaskLicense(t *testing.T) {
	if got := MaskLicense("AYUSH/MH/2024/001234"); got != "AYUSH/MH/2024/******" {
		t.Errorf("MaskLicense = %q", got)
	}
	if got := MaskLicense("garbage"); got != "******" {
		t.Errorf("MaskLicense(garbage) = %q", got)
	}
	if got := MaskLicense(""); got != "" {
		t.Errorf("MaskLicense(empty) = %q", got)
	}
}

func TestMaskABHAID(t *testing.T) {
	if got := MaskABHAID("91-2024-1234-5678"); got != "91-2024-****-****" {
		t.Errorf("MaskABHAID = %q", got)
	}
	if got := MaskABHAID("short"); got != "" {
		t.Errorf("MaskABHAID(short) = %q", got)
	}
}

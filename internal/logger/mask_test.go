package logger

import (
	"net/http"
	"testing"
)

func TestMaskAuthorization(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"Bearer sk_live_12345678": "Bearer ****5678",
		"raw-token-value":         "****alue",
		"abc":                     "****abc",
	}
	for in, want := range cases {
		if got := MaskAuthorization(in); got != want {
			t.Errorf("MaskAuthorization(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskTaxID(t *testing.T) {
	if got := MaskTaxID("0105558123456"); got != "****3456" {
		t.Fatalf("MaskTaxID = %q", got)
	}
	if got := MaskTaxID("  "); got != "" {
		t.Fatalf("MaskTaxID(blank) = %q", got)
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{
		"Authorization": {"Bearer secret-token-9999"},
		"X-Api-Key":     {"key-1234"},
		"Content-Type":  {"application/json"},
	}
	masked := MaskHeaders(headers)
	if masked["Authorization"] != "****9999" {
		t.Errorf("Authorization = %q", masked["Authorization"])
	}
	if masked["X-Api-Key"] != "****1234" {
		t.Errorf("X-Api-Key = %q", masked["X-Api-Key"])
	}
	if masked["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q", masked["Content-Type"])
	}
}

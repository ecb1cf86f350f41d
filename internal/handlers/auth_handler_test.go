package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestGetIPAddress(t *testing.T) {
	tests := []struct {
		name      string
		forwarded string
		realIP    string
		remote    string
		want      string
	}{
		{"forwarded single", "203.0.113.7", "", "10.0.0.1:1234", "203.0.113.7"},
		{"forwarded chain takes first", "203.0.113.7, 10.0.0.2", "", "10.0.0.1:1234", "203.0.113.7"},
		{"real ip fallback", "", "203.0.113.9", "10.0.0.1:1234", "203.0.113.9"},
		{"remote addr fallback", "", "", "10.0.0.1:1234", "10.0.0.1:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/auth/login", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := getIPAddress(r); got != tt.want {
				t.Errorf("getIPAddress = %q, want %q", got, tt.want)
			}
		})
	}
}

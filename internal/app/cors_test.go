package app

import "testing"

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"tourdesk.io", "*.tourdesk.io", "localhost:*"}

	cases := map[string]bool{
		"https://tourdesk.io":       true,
		"https://admin.tourdesk.io": true,
		"http://localhost:3000":     true,
		"http://localhost:5173":     true,
		"https://tourdesk.io.evil":  false,
		"https://eviltourdesk.io":   false,
		"https://other.example.com": false,
	}
	for origin, want := range cases {
		if got := originAllowed(patterns, origin); got != want {
			t.Errorf("originAllowed(%q) = %v, want %v", origin, got, want)
		}
	}
}

func TestOriginAllowedEmptyPatterns(t *testing.T) {
	if originAllowed(nil, "https://tourdesk.io") {
		t.Error("empty pattern list should allow nothing")
	}
}

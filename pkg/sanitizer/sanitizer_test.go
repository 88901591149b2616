package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"leading and trailing", "  drill  ", "drill"},
		{"interior runs collapse", "power   drill", "power drill"},
		{"tabs and newlines", "power\t\ndrill", "power drill"},
		{"already clean", "power drill", "power drill"},
		{"unicode kept", "дрель аккумуляторная", "дрель аккумуляторная"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  User@Example.COM ", "user@example.com"},
		{"plain@host.org", "plain@host.org"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.expected {
			t.Errorf("NormalizeEmail(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	if got := NormalizeText(" great  saw "); got != "great saw" {
		t.Errorf("expected 'great saw', got %q", got)
	}
}

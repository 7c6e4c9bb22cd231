// ABOUTME: Tests for shared CLI utility functions
// ABOUTME: Covers string truncation and flag validation helpers

package commands

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"longer than max", "hello world", 8, "hello..."},
		{"tiny max", "hello", 2, "he"},
		{"empty string", "", 5, ""},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "top-k"); err != nil {
		t.Errorf("validatePositiveInt(5) error = %v, want nil", err)
	}

	for _, n := range []int{0, -1, -100} {
		if err := validatePositiveInt(n, "top-k"); err == nil {
			t.Errorf("validatePositiveInt(%d) = nil, want error", n)
		}
	}
}

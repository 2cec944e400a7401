package netdev

import "testing"

func TestPrefixToMask(t *testing.T) {
	tests := []struct {
		prefix   int
		expected string
	}{
		{0, "0.0.0.0"},
		{8, "255.0.0.0"},
		{16, "255.255.0.0"},
		{22, "255.255.252.0"},
		{24, "255.255.255.0"},
		{32, "255.255.255.255"},
		{-1, ""},
		{33, ""},
	}

	for _, tt := range tests {
		if got := PrefixToMask(tt.prefix); got != tt.expected {
			t.Errorf("PrefixToMask(%d) = %q, want %q", tt.prefix, got, tt.expected)
		}
	}
}

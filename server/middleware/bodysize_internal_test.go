package middleware

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 42},
		{"512", 512},
		{"1KB", 1024},
		{"10MB", 10 << 20},
		{"2gb", 2 << 30},
		{"junk", 42},
		{"-1MB", 42},
	}
	for _, tt := range tests {
		if got := parseSize(tt.in, 42); got != tt.want {
			t.Errorf("parseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

package validation

import (
	"os"
	"strings"
	"testing"
)

func TestValidateEmoji(t *testing.T) {
	tests := []struct {
		name  string
		emoji string
		want  bool
	}{
		{"Fire emoji", "🔥", true},
		{"Thumbs up", "👍", true},
		{"Empty", "", false},
		{"Whitespace only", "   ", false},
		{"Too long", strings.Repeat("🔥", 10), false},
		{"Invalid utf8", string([]byte{0xff, 0xfe}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEmoji(tt.emoji); got != tt.want {
				t.Errorf("ValidateEmoji(%q) = %v, want %v", tt.emoji, got, tt.want)
			}
		})
	}
}

func TestMaxMessageLength(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"Default", "", 4000},
		{"Custom", "2000", 2000},
		{"Invalid", "abc", 4000},
		{"Zero", "0", 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env == "" {
				os.Unsetenv("MAX_MESSAGE_LENGTH")
			} else {
				os.Setenv("MAX_MESSAGE_LENGTH", tt.env)
			}
			defer os.Unsetenv("MAX_MESSAGE_LENGTH")

			if got := MaxMessageLength(); got != tt.want {
				t.Errorf("MaxMessageLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrimContent(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		max    int
		want   string
		wantOK bool
	}{
		{"Trims whitespace", "  hello  ", 0, "hello", true},
		{"Within limit", "abc", 3, "abc", true},
		{"Over limit", "abcdef", 3, "abcdef", false},
		{"No limit when zero", "abcdef", 0, "abcdef", true},
		{"Multi-byte rune counts in bytes", "ab🔥", 5, "ab🔥", false},
		{"Multi-byte rune within limit", "ab🔥", 6, "ab🔥", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TrimContent(tt.in, tt.max)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("TrimContent(%q, %d) = (%q, %v), want (%q, %v)",
					tt.in, tt.max, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

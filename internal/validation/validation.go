package validation

import (
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

func MaxMessageLength() int {
	maxStr := os.Getenv("MAX_MESSAGE_LENGTH")
	if maxStr == "" {
		return 4000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 4000
	}
	return max
}

func MaxTitleLength() int {
	maxStr := os.Getenv("MAX_TITLE_LENGTH")
	if maxStr == "" {
		return 150
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 150
	}
	return max
}

// ValidateEmoji accepts a short non-empty emoji string. The 16-byte cap
// matches the column size; grapheme clusters like flag sequences fit.
func ValidateEmoji(emoji string) bool {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" || len(emoji) > 16 {
		return false
	}
	return utf8.ValidString(emoji)
}

// TrimContent trims surrounding whitespace and reports whether the result
// fits within max bytes. max <= 0 means unlimited. Content is never altered
// beyond the trim; callers reject over-limit input instead of truncating,
// so stored content always reads back byte-for-byte.
func TrimContent(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if max > 0 && len(s) > max {
		return s, false
	}
	return s, true
}

package errors

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxArtistNameLength bounds names accepted from users and query strings.
const maxArtistNameLength = 256

// ValidateArtistName checks a user-supplied artist name.
// It rejects empty names, overlong names and names containing control
// characters. Names are otherwise matched verbatim (case-sensitive).
func ValidateArtistName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "artist name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxArtistNameLength {
		return New(ErrCodeInvalidInput, "artist name too long (max %d characters)", maxArtistNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "artist name contains invalid control characters")
		}
	}
	return nil
}

// ParseCount parses a positive count such as the n of a top-degree query.
// An empty string yields def.
func ParseCount(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, New(ErrCodeInvalidInput, "not a number: %q", s)
	}
	if n <= 0 {
		return 0, New(ErrCodeInvalidInput, "count must be positive, got %d", n)
	}
	return n, nil
}

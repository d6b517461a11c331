// Package normalize shapes raw request input into the form we store
// and return to callers.
package normalize

import (
	"strings"
	"time"
)

// Field returns a normalized form of a free-text field suitable for
// storage and comparisons. Normalization currently trims surrounding
// whitespace.
func Field(s string) string {
	return strings.TrimSpace(s)
}

// Blank reports whether a field is empty after normalization.
func Blank(s string) bool {
	return Field(s) == ""
}

// Timestamp resolves an optional client-supplied RFC3339 timestamp.
// An absent (blank) value defaults to now(). A supplied value is parsed
// without any sanity checking: an unparseable string resolves to the
// zero time and is stored as-is rather than rejected.
func Timestamp(raw string, now func() time.Time) time.Time {
	raw = Field(raw)
	if raw == "" {
		return now()
	}
	t, _ := time.Parse(time.RFC3339, raw)
	return t
}

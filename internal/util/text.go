package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Sanitize strips C0/C1 control characters, collapses whitespace runs to a
// single space and trims the ends. Idempotent.
func Sanitize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(reSpaces.ReplaceAllString(b.String(), " "))
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }

func DerefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func DerefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

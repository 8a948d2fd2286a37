// Package sanitize cleans primitive values before they enter the data
// model: free text is stripped of markup, numbers and dates are coerced
// into canonical forms. Sanitizers never fail; invalid input degrades to
// a safe default and validation decides whether that default is
// acceptable.
package sanitize

import (
	"html"
	"math"
	"regexp"
	"strings"
	"time"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)>`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Text strips HTML markup from free text, collapses whitespace, and
// truncates to maxLen runes. maxLen <= 0 means no limit.
func Text(s string, maxLen int) string {
	s = scriptRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if maxLen > 0 {
		runes := []rune(s)
		if len(runes) > maxLen {
			s = strings.TrimSpace(string(runes[:maxLen]))
		}
	}
	return s
}

// Identifier lowercases and trims an opaque id, keeping only characters
// safe for storage keys.
func Identifier(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Number coerces a float into a finite value, mapping NaN and infinities
// to the fallback.
func Number(f, fallback float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// dateFormats are tried in order when parsing user-entered dates.
var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	time.RFC3339,
}

// Date parses a date string, tolerating the formats the import surface
// accepts. A zero time and false are returned when nothing matches.
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Bool interprets common truthy and falsy spellings, returning the
// fallback for anything unrecognized.
func Bool(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "on":
		return true
	case "false", "no", "0", "off":
		return false
	default:
		return fallback
	}
}

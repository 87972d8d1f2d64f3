// Package normalize converts raw metadata fields into catalog values and
// folds titles for comparison.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NotAvailable is the placeholder OMDb uses for missing fields.
const NotAvailable = "N/A"

// ErrNoYear is returned when a year string holds no four-digit year.
var ErrNoYear = errors.New("no year found")

var yearRegexp = regexp.MustCompile(`\d{4}`)

// Year extracts the first four-digit run from a year field.
// "2001", "2001–2003", "2001-2003" and "2001–" all yield 2001.
func Year(raw string) (int, error) {
	m := yearRegexp.FindString(raw)
	if m == "" {
		return 0, fmt.Errorf("%w in %q", ErrNoYear, raw)
	}
	return strconv.Atoi(m)
}

// Rating parses a rating field. "N/A" and empty map to 0.
func Rating(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NotAvailable {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rating %q: %w", raw, err)
	}
	return v, nil
}

// Poster returns the poster URL, or empty when the field is "N/A".
func Poster(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == NotAvailable {
		return ""
	}
	return raw
}

// Title cleans a typed title: control characters are dropped and
// surrounding whitespace trimmed. Case and inner spacing are preserved.
func Title(raw string) string {
	return strings.TrimSpace(sanitizeString(raw))
}

// Fold returns s in a form suitable for case-insensitive comparison:
// NFKC-normalized and Unicode case-folded.
func Fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// sanitizeString removes control characters and invalid UTF-8.
func sanitizeString(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

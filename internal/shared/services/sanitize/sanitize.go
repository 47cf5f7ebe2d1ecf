// Package sanitize normalizes free text and identifiers before they reach storage.
package sanitize

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	strict = bluemonday.StrictPolicy()
	upper  = cases.Upper(language.Und)
)

// Text strips any markup from user supplied notes and remarks and trims it.
// Entities produced by the policy are decoded back so stored text stays plain.
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Identifier trims and upper-cases serials, asset tags and state codes.
func Identifier(s string) string {
	return upper.String(strings.TrimSpace(s))
}

// Fold lower-cases and removes diacritics, so "Código" and "codigo" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Optional returns nil for blank input and a pointer to the sanitized text otherwise.
func Optional(s string) *string {
	v := Text(s)
	if v == "" {
		return nil
	}
	return &v
}

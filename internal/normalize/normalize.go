// Package normalize turns free-form identifiers and vessel names into canonical
// comparable strings. Every function is total: absent or malformed input yields
// an empty result, never an error.
package normalize

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TerminalID canonicalizes an IMN/SSAS terminal number: uppercase, keeping only
// A-Z and 0-9. An empty result means "absent" and never matches.
func TerminalID(value string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(value) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Digits keeps only ASCII decimal digits. Leading zeros are significant.
func Digits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalizer compares vessel names using a transliteration table. The zero
// value is not usable; build one with NewNormalizer.
type Normalizer struct {
	translit *Transliterator
}

// NewNormalizer builds a Normalizer whose transliteration table is the default
// Cyrillic table extended by extra. Entries in extra never replace built-in ones.
func NewNormalizer(extra map[rune]string) *Normalizer {
	return &Normalizer{translit: NewTransliterator(extra)}
}

var defaultNormalizer = NewNormalizer(nil)

// VesselName normalizes with the default transliteration table.
func VesselName(value string) string {
	return defaultNormalizer.VesselName(value)
}

// Similarity compares two vessel names with the default table.
func Similarity(a, b string) float64 {
	return defaultNormalizer.Similarity(a, b)
}

// VesselName trims, transliterates Cyrillic to Latin, strips diacritics and
// reduces the name to single-spaced [A-Z0-9 ]. Punctuation separates words, so
// "KAPITAN-IVANOV" and "KAPITAN IVANOV" normalize alike.
func (n *Normalizer) VesselName(value string) string {
	s := strings.Join(strings.Fields(value), " ")
	if s == "" {
		return ""
	}
	s = n.translit.Transliterate(s)
	s = stripDiacritics(s)
	// Full case mapping, so "ß" becomes "SS" rather than a word break.
	s = cases.Upper(language.Und).String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Similarity returns 1 - distance/max(len) over normalized names, in [0,1].
// It is 0 when either side normalizes to empty.
func (n *Normalizer) Similarity(a, b string) float64 {
	na, nb := n.VesselName(a), n.VesselName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	longest := max(len(na), len(nb))
	return 1 - float64(Levenshtein(na, nb))/float64(longest)
}

// Levenshtein is the classic edit distance (insert, delete, substitute).
func Levenshtein(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

var diacritics = runes.Remove(runes.In(unicode.Mn))

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, diacritics, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

package normalize

import (
	"strings"
	"unicode"
)

// cyrillicToLatin is the fixed Russian transliteration table. Hard and soft
// signs drop out; palatalized letters expand to two or three Latin letters.
var cyrillicToLatin = map[rune]string{
	'А': "A", 'Б': "B", 'В': "V", 'Г': "G", 'Д': "D", 'Е': "E", 'Ё': "E",
	'Ж': "ZH", 'З': "Z", 'И': "I", 'Й': "Y", 'К': "K", 'Л': "L", 'М': "M",
	'Н': "N", 'О': "O", 'П': "P", 'Р': "R", 'С': "S", 'Т': "T", 'У': "U",
	'Ф': "F", 'Х': "KH", 'Ц': "TS", 'Ч': "CH", 'Ш': "SH", 'Щ': "SCH",
	'Ъ': "", 'Ы': "Y", 'Ь': "", 'Э': "E", 'Ю': "YU", 'Я': "YA",
}

// Transliterator maps runes to Latin replacements. Lowercase Cyrillic is
// covered through its uppercase form.
type Transliterator struct {
	table map[rune]string
}

// NewTransliterator copies the default table and adds entries from extra that
// are not already present.
func NewTransliterator(extra map[rune]string) *Transliterator {
	table := make(map[rune]string, len(cyrillicToLatin)+len(extra))
	for r, s := range cyrillicToLatin {
		table[r] = s
	}
	for r, s := range extra {
		key := unicode.ToUpper(r)
		if _, exists := table[key]; !exists {
			table[key] = strings.ToUpper(s)
		}
	}
	return &Transliterator{table: table}
}

// Transliterate replaces every mapped rune and leaves the rest untouched.
func (t *Transliterator) Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if latin, ok := lookup(t.table, r); ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lookup(table map[rune]string, r rune) (string, bool) {
	if s, ok := table[r]; ok {
		return s, true
	}
	if upper := unicode.ToUpper(r); upper != r {
		s, ok := table[upper]
		return s, ok
	}
	return "", false
}

// ParseExtra converts configuration pairs ("Ә" -> "A") into a rune table.
// Keys that are not exactly one rune are ignored.
func ParseExtra(pairs map[string]string) map[rune]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[rune]string, len(pairs))
	for k, v := range pairs {
		rs := []rune(k)
		if len(rs) != 1 {
			continue
		}
		out[rs[0]] = v
	}
	return out
}

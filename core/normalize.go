package core

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a raw query into a comparable term key.
//
// The string is composed (NFC), case-folded, stripped of everything except
// letters, digits, combining marks, underscores, whitespace, hyphens and
// periods, then whitespace runs are collapsed and the result trimmed.
// Accents are preserved. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := norm.NFC.String(raw)
	// Casers are stateful, so each call gets its own.
	s = cases.Fold().String(s)
	s = strings.Map(keepRune, s)
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(s)
}

func keepRune(r rune) rune {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), unicode.IsSpace(r):
		return r
	case r == '_' || r == '-' || r == '.':
		return r
	default:
		return -1
	}
}

// ExtractWords splits a query on whitespace, normalizes each token and
// discards tokens shorter than MinKeyLength runes.
func ExtractWords(query string) []string {
	fields := strings.Fields(query)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := Normalize(field)
		if utf8.RuneCountInString(word) < MinKeyLength {
			continue
		}
		words = append(words, word)
	}
	return words
}

// FoldAccents lowercases s and removes combining diacritics, so that
// "Décret" and "decret" compare equal.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

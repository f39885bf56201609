// Package vocab holds the vocabulary normalization rules shared by the
// corpus reader and the subset store.
package vocab

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fold maps a word to its comparison form: NFC composed, then lowercased
// rune by rune. Two words match when their folds are equal. Lowercasing
// never changes a word's length in runes, so "maße" and "masse" stay apart.
// The fold is also the key subsets and cache files store words under.
func Fold(word string) string {
	return strings.ToLower(norm.NFC.String(word))
}

// Dedupe removes duplicate words, keeping the first occurrence of each fold
// and preserving list order. Blank entries are dropped.
func Dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		f := Fold(w)
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, w)
	}
	return out
}

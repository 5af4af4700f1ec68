// Package matching resolves free-text team and player names from
// inconsistent upstream sources to canonical identities. Matching is a
// fixed rule cascade, not a scored ranking: exact match, name-order
// reversal (players only), alias tables, then guarded token rules.
// All functions are pure and safe for concurrent use.
package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "Đoković"
// normalizes the same as "Dokovic".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics, drops everything but letters
// and spaces, and collapses whitespace. The cascade compares only
// normalized strings.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range strings.ToLower(out) {
		if unicode.IsLetter(r) || r == ' ' {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// reverseTwoTokens swaps "first last" to "last first". Anything other
// than exactly two tokens is returned unchanged.
func reverseTwoTokens(s string) string {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return s
	}
	return parts[1] + " " + parts[0]
}

package matching

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minTokenLen guards the loose token rules: final-token and whole-word
// comparisons only fire on tokens longer than 4 characters, suppressing
// accidental hits on short common surnames.
const minTokenLen = 4

// longEnough counts runes, not bytes; a two-character CJK surname must
// not slip past the guard on byte length alone.
func longEnough(tok string) bool {
	return utf8.RuneCountInString(tok) > minTokenLen
}

// NamesMatch reports whether two free-text team names denote the same
// team. Team codes are matched separately via TeamCodeInText; a code
// like "MIN" never matches a name like "Wild" here.
func NamesMatch(a, b string) bool {
	return DefaultTable().TeamsMatch(a, b)
}

// PlayerNamesMatch reports whether two free-text player names denote
// the same player, tolerating reversed name order.
func PlayerNamesMatch(a, b string) bool {
	return DefaultTable().PlayersMatch(a, b)
}

// TeamsMatch runs the cascade with the team alias table and no reversal step.
func (t *Table) TeamsMatch(a, b string) bool {
	return t.cascade(a, b, false)
}

// PlayersMatch runs the cascade with the player alias table and the
// two-token reversal step.
func (t *Table) PlayersMatch(a, b string) bool {
	return t.cascade(a, b, true)
}

// cascade applies the matching rules in a fixed order; first rule wins.
// The order matters: the loose token rules would produce false positives
// if tried before the exact and alias rules.
func (t *Table) cascade(a, b string, player bool) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}

	// 1. Exact match on normalized strings.
	if na == nb {
		return true
	}

	// 2. Players only: "First Last" vs "Last First".
	if player && (reverseTwoTokens(na) == nb || na == reverseTwoTokens(nb)) {
		return true
	}

	// 3. Alias table, bidirectional and transitive through the canonical key.
	if player {
		if t.playerAlias(na, nb) {
			return true
		}
	} else if t.teamAlias(na, nb) {
		return true
	}

	ta := strings.Fields(na)
	tb := strings.Fields(nb)
	lastA := ta[len(ta)-1]
	lastB := tb[len(tb)-1]

	// 4. Equal final tokens (surnames), long enough to be distinctive,
	// plus the mixed-order first-vs-last variants.
	if lastA == lastB && longEnough(lastA) {
		return true
	}
	if ta[0] == lastB && longEnough(lastB) {
		return true
	}
	if tb[0] == lastA && longEnough(lastA) {
		return true
	}

	// 5. Single-token search term as a whole word inside the longer name.
	if len(ta) == 1 && longEnough(na) && wholeWord(na, nb) {
		return true
	}
	if len(tb) == 1 && longEnough(nb) && wholeWord(nb, na) {
		return true
	}

	return false
}

// wholeWord reports whether term appears word-bounded inside text.
func wholeWord(term, text string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(term) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

package matching

import "regexp"

// codeShape restricts code matching to 3-letter uppercase abbreviations.
var codeShape = regexp.MustCompile(`^[A-Z]{3}$`)

// TeamCodeInText reports whether a 3-letter uppercase team code appears
// as a whole word in free text. Substring hits are never allowed: "MIN"
// must not fire inside "TERMINAL", nor a short code inside "ATLANTA".
// Codes that are not exactly three uppercase letters never match.
func TeamCodeInText(code, text string) bool {
	if !codeShape.MatchString(code) {
		return false
	}
	re, err := regexp.Compile(`\b` + code + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// TeamNameInText reports whether a full team name appears word-bounded
// in free text, case-insensitively. Unlike codes there is no length
// restriction; multi-word names match as a whole phrase.
func TeamNameInText(name, text string) bool {
	n := Normalize(name)
	if n == "" {
		return false
	}
	return wholeWord(n, Normalize(text))
}

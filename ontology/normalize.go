package ontology

import (
	"strings"
	"unicode"
)

// Normalize reduces a label or field name to its canonical comparable
// form: case-folded, punctuation replaced by spaces, whitespace
// collapsed. "Torque_Nm " and "torque nm" normalize identically.
func Normalize(s string) string {
	return strings.Join(Tokens(s), " ")
}

// Tokens splits a label into normalized tokens. Underscores, hyphens
// and any other punctuation act as separators; tokens are lowercased.
func Tokens(s string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			flush()
		}
	}
	flush()

	return tokens
}

// TokenSet returns the normalized tokens of s as a set.
func TokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(s) {
		set[tok] = struct{}{}
	}
	return set
}

// OverlapRatio computes the token-overlap ratio between two token
// sets: shared tokens divided by the union of tokens. Returns 0 when
// either set is empty.
func OverlapRatio(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

package align

import (
	"strings"
	"unicode"

	"narralign/internal/lingua"
)

// normalizeText strips punctuation, collapses whitespace, and lowercases.
// Letters and digits of any script survive.
func normalizeText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// normalizeDialogue normalizes a full dialogue line for matching. For
// Latin-script text, standalone numbers are spelled out so "5" in the
// script matches a transcribed "five". Hangul text skips digit spelling;
// numeral readings vary too much there to normalize reliably.
func (a *Aligner) normalizeDialogue(text string) string {
	normalized := normalizeText(text)
	if a.speller == nil || lingua.DetectScript(text) != lingua.ScriptLatin {
		return normalized
	}
	fields := strings.Fields(normalized)
	changed := false
	for i, f := range fields {
		if spelled, ok := a.speller.Spell(f); ok {
			fields[i] = normalizeText(spelled)
			changed = true
		}
	}
	if !changed {
		return normalized
	}
	return strings.Join(fields, " ")
}

// lastRunes returns the trailing n runes of s.
func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

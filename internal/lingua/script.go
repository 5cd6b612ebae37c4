package lingua

import "unicode"

// Script identifies the dominant script family of a text.
type Script int

const (
	ScriptLatin Script = iota
	ScriptHangul
)

// hangulShare is the fraction of word characters that must be Hangul for a
// text to be treated as Hangul-script.
const hangulShare = 0.3

// DetectScript reports the dominant script family of text. Texts with no
// word characters default to Latin.
func DetectScript(text string) Script {
	var hangul, total int
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		total++
		if unicode.Is(unicode.Hangul, r) {
			hangul++
		}
	}
	if total == 0 {
		return ScriptLatin
	}
	if float64(hangul)/float64(total) > hangulShare {
		return ScriptHangul
	}
	return ScriptLatin
}

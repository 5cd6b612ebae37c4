package lingua

import (
	"strconv"

	"github.com/divan/num2words"
)

// Speller spells an integer out in words ("42" -> "forty-two").
type Speller interface {
	// Spell returns the spelled-out form of the token and true when the
	// token is a number the speller understands.
	Spell(token string) (string, bool)
}

type numberSpeller struct{}

func (numberSpeller) Spell(token string) (string, bool) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return "", false
	}
	return num2words.Convert(n), true
}

// DefaultSpeller returns the digit-to-words speller for Latin-script text.
func DefaultSpeller() Speller { return numberSpeller{} }

type noSpeller struct{}

func (noSpeller) Spell(string) (string, bool) { return "", false }

// NoSpeller returns the degraded speller: digit normalization is skipped.
func NoSpeller() Speller { return noSpeller{} }

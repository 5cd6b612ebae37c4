package segment

import (
	"strings"
	"unicode"

	"narralign/internal/lingua"
)

// scoreConsts are the bonus and penalty magnitudes for one mode. Line-mode
// values are smaller than segment-mode values: a line break operates inside
// a much tighter character budget, so linguistic preferences must not drag
// the break far from the balance point.
type scoreConsts struct {
	sentenceEnd    float64 // break right after . ? !
	clauseEnd      float64 // break right after , ; :
	strong         float64 // clause or sentence boundary by morphology
	medium         float64 // particle/nominalizer boundary
	ofBonus        float64 // break before "of"
	tightBind      float64 // generic penalty unit for tightly bound words
	orphanPenalty  float64 // break strands fewer than orphanChars characters
	distanceWeight float64 // scale of the distance-from-target penalty
}

var segmentConsts = scoreConsts{
	sentenceEnd:    50,
	clauseEnd:      30,
	strong:         30,
	medium:         20,
	ofBonus:        5,
	tightBind:      15,
	orphanPenalty:  -100,
	distanceWeight: 10,
}

var lineConsts = scoreConsts{
	sentenceEnd:    30,
	clauseEnd:      18,
	strong:         18,
	medium:         12,
	ofBonus:        3,
	tightBind:      9,
	orphanPenalty:  -100,
	distanceWeight: 10,
}

const (
	// orphanChars is the minimum piece size a break may leave on either side.
	orphanChars = 3
	// strictWeightFactor multiplies the distance weight on the strict retry.
	strictWeightFactor = 5
)

var (
	sentenceDelimiters = map[rune]struct{}{'.': {}, '?': {}, '!': {}, '。': {}, '？': {}, '！': {}}
	clauseDelimiters   = map[rune]struct{}{',': {}, ';': {}, ':': {}, '，': {}, '；': {}, '：': {}}

	latinConjunctions = map[string]struct{}{
		"and": {}, "but": {}, "or": {}, "so": {}, "because": {}, "if": {},
		"when": {}, "while": {}, "since": {}, "that": {}, "which": {}, "who": {},
	}
	latinPrepositions = map[string]struct{}{
		"to": {}, "in": {}, "on": {}, "at": {}, "by": {}, "for": {},
		"with": {}, "from": {}, "about": {},
	}

	// temporalNouns mark the end of a temporal clause (after/then/moment);
	// breaking right after them reads naturally.
	temporalNouns = map[string]struct{}{
		"후": {}, "뒤": {}, "다음": {}, "때": {}, "순간": {},
	}
)

// morphContext is what the scorer needs to know about one whitespace
// position: the tag (and surface) of the morpheme ending the preceding
// word and the leading tags of the following word.
type morphContext struct {
	prevTag     lingua.Tag
	prevSurface string
	nextTag     lingua.Tag
	nextTag2    lingua.Tag
}

// breakScorer scores candidate whitespace positions of one text. The
// morphological pass over the whole sentence runs once at construction and
// is cached by whitespace offset; candidates then score by lookup.
type breakScorer struct {
	consts    scoreConsts
	splitConj bool
	runes     []rune
	hangul    bool
	morph     map[int]morphContext
}

func newBreakScorer(mode Mode, splitConj bool, tagger lingua.Tagger, text string) *breakScorer {
	sc := &breakScorer{
		consts:    segmentConsts,
		splitConj: splitConj,
		runes:     []rune(text),
	}
	if mode == LineMode {
		sc.consts = lineConsts
	}
	if splitConj && lingua.DetectScript(text) == lingua.ScriptHangul {
		sc.hangul = true
		if tagger != nil {
			sc.morph = buildMorphIndex(sc.runes, tagger.Analyze(text))
		}
	}
	return sc
}

// buildMorphIndex maps every whitespace rune offset to its surrounding
// morphological context.
func buildMorphIndex(runes []rune, morphemes []lingua.Morpheme) map[int]morphContext {
	index := make(map[int]morphContext)
	for pos, r := range runes {
		if !unicode.IsSpace(r) {
			continue
		}
		var ctx morphContext
		for _, m := range morphemes {
			if m.End <= pos {
				ctx.prevTag = m.Tag
				ctx.prevSurface = m.Surface
			}
		}
		following := 0
		for _, m := range morphemes {
			if m.Start <= pos {
				continue
			}
			switch following {
			case 0:
				ctx.nextTag = m.Tag
			case 1:
				ctx.nextTag2 = m.Tag
			}
			following++
			if following == 2 {
				break
			}
		}
		index[pos] = ctx
	}
	return index
}

// score returns the linguistic adjustment for breaking at the whitespace
// position pos (a rune offset into the full text). Priority cascade:
// sentence punctuation, then clause punctuation, then the script-specific
// check when cross-language splitting is enabled.
func (sc *breakScorer) score(pos int) float64 {
	if pos <= 0 || pos >= len(sc.runes) {
		return 0
	}
	prev := sc.runes[pos-1]
	if _, ok := sentenceDelimiters[prev]; ok {
		return sc.consts.sentenceEnd
	}
	if _, ok := clauseDelimiters[prev]; ok {
		return sc.consts.clauseEnd
	}
	if !sc.splitConj {
		return 0
	}
	if sc.hangul {
		return sc.morphScore(pos)
	}
	return sc.latinScore(pos)
}

// latinScore rewards breaking before a conjunction or preposition; "of"
// binds its phrase too tightly to earn more than a token bonus.
func (sc *breakScorer) latinScore(pos int) float64 {
	next := strings.ToLower(sc.nextWord(pos))
	if next == "" {
		return 0
	}
	if next == "of" {
		return sc.consts.ofBonus
	}
	if _, ok := latinConjunctions[next]; ok {
		return sc.consts.medium
	}
	if _, ok := latinPrepositions[next]; ok {
		return sc.consts.medium
	}
	return 0
}

// morphScore judges how complete the clause before pos is. Without a
// tagger the morph map is nil and Hangul scoring degrades to the
// punctuation cascade alone.
func (sc *breakScorer) morphScore(pos int) float64 {
	ctx, ok := sc.morph[pos]
	if !ok {
		return 0
	}

	var score float64
	switch {
	case ctx.prevTag == lingua.TagConnectiveEnding || ctx.prevTag == lingua.TagSentenceFinalEnding:
		score += sc.consts.strong
	case ctx.prevTag == lingua.TagNominalizer ||
		ctx.prevTag == lingua.TagCaseParticle ||
		ctx.prevTag == lingua.TagTopicParticle ||
		ctx.prevTag == lingua.TagConjunctiveParticle:
		score += sc.consts.medium
	case isTemporalNoun(ctx.prevTag, ctx.prevSurface):
		score += sc.consts.strong
	case ctx.nextTag == lingua.TagDependentNoun:
		// A dependent noun needs its governing phrase; starting a piece
		// with one is only safe after a fully case-marked word.
		score -= sc.consts.medium
	}

	if ctx.prevTag == lingua.TagPrenominalEnding {
		score -= 2 * sc.consts.tightBind
	}
	if ctx.nextTag == lingua.TagAuxiliaryVerb {
		score -= 2 * sc.consts.tightBind
	}
	if ctx.nextTag == lingua.TagDeterminer {
		score -= sc.consts.tightBind
	}
	if (ctx.nextTag == lingua.TagNumeral && ctx.nextTag2 == lingua.TagDependentNoun) ||
		(ctx.nextTag == lingua.TagDependentNoun && ctx.nextTag2 == lingua.TagNumeral) {
		score -= sc.consts.tightBind
	}
	return score
}

func isTemporalNoun(tag lingua.Tag, surface string) bool {
	if tag != lingua.TagCommonNoun && tag != lingua.TagDependentNoun {
		return false
	}
	_, ok := temporalNouns[surface]
	return ok
}

// nextWord returns the word following the whitespace run at pos.
func (sc *breakScorer) nextWord(pos int) string {
	i := pos
	for i < len(sc.runes) && unicode.IsSpace(sc.runes[i]) {
		i++
	}
	start := i
	for i < len(sc.runes) && !unicode.IsSpace(sc.runes[i]) {
		i++
	}
	return string(sc.runes[start:i])
}

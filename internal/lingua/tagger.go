package lingua

// Tag classifies a morpheme by the grammatical role that matters for
// subtitle break scoring. The categories follow the Sejong tagset
// conventions used by Korean analyzers, but any tagger that can map its
// own tagset onto these classes can serve.
type Tag string

const (
	TagConnectiveEnding    Tag = "EC"  // connective ending (-go, -myeon, ...)
	TagSentenceFinalEnding Tag = "EF"  // sentence-final ending
	TagNominalizer         Tag = "ETN" // nominalizing ending (-gi, -eum)
	TagPrenominalEnding    Tag = "ETM" // pre-nominal modifier ending
	TagCaseParticle        Tag = "JK"  // case particle
	TagTopicParticle       Tag = "JX"  // topic/auxiliary particle
	TagConjunctiveParticle Tag = "JC"  // conjunctive particle
	TagDependentNoun       Tag = "NNB" // dependent noun
	TagCommonNoun          Tag = "NNG" // common noun
	TagDeterminer          Tag = "MM"  // determiner
	TagAuxiliaryVerb       Tag = "VX"  // auxiliary verb
	TagNumeral             Tag = "SN"  // numeral
	TagOther               Tag = ""    // anything the scorer ignores
)

// Morpheme is a single tagged unit within an analyzed sentence. Start and
// End are rune offsets into the analyzed text.
type Morpheme struct {
	Surface string
	Start   int
	End     int
	Tag     Tag
}

// Tagger runs whole-sentence morphological analysis. Implementations wrap
// an external analyzer; a nil Tagger means the capability is absent and
// scoring falls back to punctuation cues only.
type Tagger interface {
	Analyze(text string) []Morpheme
}

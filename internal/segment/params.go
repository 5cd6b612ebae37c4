package segment

// Mode selects which resolution of the split search runs.
type Mode int

const (
	// SegmentMode splits a timeline segment into separate subtitle cues.
	SegmentMode Mode = iota
	// LineMode wraps one cue's text across display lines.
	LineMode
)

// Default per-line caps, tuned for two-line Hangul subtitles.
const (
	DefaultLineSoftCap = 16
	DefaultLineHardCap = 21
	DefaultMaxLines    = 2
)

// Params holds the character budget for subtitle display.
type Params struct {
	// LineSoftCap is the length a display line should approach.
	LineSoftCap int
	// LineHardCap is the length a display line must not exceed outside
	// forced truncation.
	LineHardCap int
	// MaxLines is the number of display lines per cue.
	MaxLines int
	// SplitOnConjunctions enables the language-specific break scoring
	// beyond plain punctuation.
	SplitOnConjunctions bool
}

func (p Params) withDefaults() Params {
	if p.LineSoftCap <= 0 {
		p.LineSoftCap = DefaultLineSoftCap
	}
	if p.LineHardCap < p.LineSoftCap {
		p.LineHardCap = p.LineSoftCap + (DefaultLineHardCap - DefaultLineSoftCap)
	}
	if p.MaxLines < 1 {
		p.MaxLines = DefaultMaxLines
	}
	return p
}

// caps returns the (soft, hard) character budget for a mode. Segment-mode
// caps are headroom-adjusted multiples of the line caps: the soft target
// leaves half a line of slack and the hard cap assumes all lines but the
// last stop at the soft cap.
func (p Params) caps(mode Mode) (soft, hard int) {
	if mode == LineMode {
		return p.LineSoftCap, p.LineHardCap
	}
	soft = int(float64(p.LineSoftCap) * (float64(p.MaxLines) - 0.5))
	hard = p.LineSoftCap*(p.MaxLines-1) + p.LineHardCap
	return soft, hard
}

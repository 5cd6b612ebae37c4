// Package segment splits long subtitle text into display-sized chunks and
// maps the chosen split offsets back to audio timestamps.
//
// One search algorithm runs at two resolutions: segment mode decides where
// a timeline segment breaks into separate subtitle cues, line mode decides
// where a cue wraps onto its second line. Candidate whitespace positions
// are scored by distance from an even-split target plus language-aware
// bonuses (sentence and clause punctuation, conjunction boundaries for
// Latin text, morphological boundaries for Hangul when a tagger is
// available).
//
// All character offsets in this package are rune offsets.
package segment

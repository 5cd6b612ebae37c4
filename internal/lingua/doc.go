// Package lingua holds the language-dependent capabilities the alignment
// and segmentation engines rely on: fuzzy string similarity, morphological
// tagging, digit spelling, and script-family detection.
//
// The fuzzy matcher, tagger, and speller are optional. Each is modelled as a
// small interface with an explicit degraded variant, so callers decide once
// at construction time which implementation they carry instead of checking
// availability on every call. Absence never fails a pipeline; it only lowers
// match quality.
package lingua

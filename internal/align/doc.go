// Package align locates each authored dialogue line inside a speaker's
// word-level transcript and rebuilds clean per-word timestamps for it.
//
// The search is a sliding-window fuzzy match over the transcript, driven
// by a forward-only cursor so two dialogue lines can never claim the same
// audio. A winning window is then re-timed against the script wording with
// a sequence diff, which survives transcription errors, merged or split
// words, and hallucinated extras.
package align

// Package script parses speaker-tagged narration scripts into dialogue
// lines. The accepted format is one line per utterance, "Speaker: text",
// optionally prefixed with a list bullet (-, *, or •).
package script

// Package transcriptcache persists parsed transcripts in SQLite so
// repeated alignment runs against the same audio skip the JSON parsing
// and normalization pass.
//
// Entries are keyed by a content fingerprint of the transcript file, so a
// re-exported or edited transcript is never served stale. A file lock
// keeps concurrent narralign invocations from racing on the database.
package transcriptcache

// Package transcript models word-level transcription output and loads the
// JSON payloads produced by whisper-style transcribers. Transcription
// itself happens upstream; this package only consumes its data contract.
package transcript

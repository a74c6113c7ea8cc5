// Package timeline normalizes raw transcription and diarization output into
// flat, time-ordered interval lists expressed in integer milliseconds.
//
// Two inputs are supported:
//   - WhisperX-style transcript JSON: segments[].words[] with floating-point
//     second timestamps. Word timestamps are truncated (not rounded) to
//     milliseconds so repeated runs over the same input stay byte-identical.
//   - Diarization CSV: one "start_ms,end_ms,speaker" line per speaker turn,
//     with an optional "start,end,speaker" header.
//
// Parsing is strict: missing or malformed required fields abort the run,
// since no partial alignment is meaningful downstream.
package timeline

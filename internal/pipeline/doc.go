// Package pipeline orchestrates the full subtitle run: probe the input,
// extract mono audio, run transcription and diarization, then align the two
// timelines into rendered subtitle documents. Job state is persisted to the
// queue store at every transition so interrupted runs remain inspectable.
package pipeline

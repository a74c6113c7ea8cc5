// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no subweave-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result locate audio streams and expose the container
// duration, which the pipeline uses to pick the recognition input and to
// size progress estimates.
package ffprobe

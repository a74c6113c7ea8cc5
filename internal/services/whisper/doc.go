// Package whisper runs WhisperX speech recognition through uvx.
//
// This package handles:
//   - Mono 16kHz audio extraction via ffmpeg
//   - WhisperX invocation with word-level timestamps
//   - Locating the JSON transcript the tool writes
//
// Configuration options (model, beam size, CUDA) are passed via Config.
package whisper

// Package pyannote runs speaker diarization through uvx with an embedded
// Python driver script.
//
// The script loads the pyannote speaker-diarization pipeline, runs it over
// an extracted WAV file, and writes one "start_ms,end_ms,speaker" line per
// speaker turn. Speaker count pinning and min/max bounds map to the
// pipeline's num_speakers and min/max_speakers arguments and are mutually
// exclusive.
package pyannote

// Package attribution assigns a speaker to every transcript word by temporal
// overlap against the diarization timeline.
//
// Both inputs are ordered by start time, so the engine runs as a linear merge
// with a moving lower-bound cursor into the turn list instead of rescanning
// from the start for every word. Output is fully deterministic: overlap ties
// resolve to the speaker encountered first in diarization order, and words
// with no overlapping turn fall back to the turn whose start time is nearest.
package attribution

// Package subtitle turns attributed transcript cues into readable subtitle
// lines and serializes them as SRT or plain transcript text.
//
// The builder is a greedy forward merge: a cue joins the open line only while
// the speaker matches, the line does not already end in sentence punctuation,
// and the line stays under the configured word limit. Each call to Build
// produces an independent document, so the same attributed sequence can be
// segmented once per output format without shared mutation.
package subtitle

package subtitle

import (
	"errors"
	"fmt"
	"strings"

	"subweave/internal/timeline"
)

// DefaultMaxWordsPerLine caps line length when no explicit limit is given.
const DefaultMaxWordsPerLine = 7

// ErrInvariant reports an interval that violates end > start by the time it
// reaches the builder. Upstream produced corrupt timing; clamping it here
// would only hide the bug, so the run aborts instead.
var ErrInvariant = errors.New("subtitle: interval invariant violated")

var sentenceTerminators = [...]byte{'.', '?', '!'}

// Line is one emitted subtitle entry. Indices are sequential from 0 with no
// gaps; text is trimmed and never empty.
type Line struct {
	Index   int
	StartMS int64
	EndMS   int64
	Text    string
	Speaker string
}

// Document is an ordered sequence of subtitle lines ready for rendering.
type Document struct {
	Lines []Line
}

// Build merges attributed cues into subtitle lines. A cue merges into the
// open line only when the speaker matches, the line's last character is not a
// sentence terminator, and the line's word count is strictly under maxWords.
// Merging extends the line's end time; its start time never moves.
//
// Build reads the cue slice without mutating it and returns a fresh document
// on every call. An empty cue sequence yields an empty, valid document.
func Build(cues []timeline.Cue, maxWords int) (*Document, error) {
	if maxWords <= 0 {
		maxWords = DefaultMaxWordsPerLine
	}

	doc := &Document{}
	var open *Line
	for i, cue := range cues {
		if cue.StartMS < 0 || cue.EndMS <= cue.StartMS {
			return nil, fmt.Errorf("%w: cue %d (%q) has interval %d..%d", ErrInvariant, i, cue.Text, cue.StartMS, cue.EndMS)
		}
		text := strings.TrimSpace(cue.Text)
		if text == "" {
			continue
		}

		if open != nil && canMerge(open, cue.Speaker, maxWords) {
			open.Text += " " + text
			open.EndMS = cue.EndMS
			continue
		}

		doc.Lines = append(doc.Lines, Line{
			Index:   len(doc.Lines),
			StartMS: cue.StartMS,
			EndMS:   cue.EndMS,
			Text:    text,
			Speaker: cue.Speaker,
		})
		open = &doc.Lines[len(doc.Lines)-1]
	}
	return doc, nil
}

func canMerge(line *Line, speaker string, maxWords int) bool {
	if line.Speaker != speaker {
		return false
	}
	if endsWithTerminator(line.Text) {
		return false
	}
	return wordCount(line.Text) < maxWords
}

func endsWithTerminator(text string) bool {
	if text == "" {
		return false
	}
	last := text[len(text)-1]
	for _, terminator := range sentenceTerminators {
		if last == terminator {
			return true
		}
	}
	return false
}

// wordCount splits on single spaces, matching the merge rule's definition of
// a word rather than any broader whitespace notion.
func wordCount(text string) int {
	return len(strings.Split(text, " "))
}

package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// transcriptWord mirrors one word entry in WhisperX JSON output. Pointer
// fields distinguish absent keys from zero values.
type transcriptWord struct {
	Word  *string  `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

type transcriptSegment struct {
	Text  string            `json:"text"`
	Words *[]transcriptWord `json:"words"`
}

type transcriptPayload struct {
	Segments *[]transcriptSegment `json:"segments"`
}

// ParseTranscript decodes transcript JSON and flattens every segment's words
// into a single list ordered by start time. Word timestamps are converted
// from float seconds to integer milliseconds by truncation.
func ParseTranscript(r io.Reader) ([]Word, error) {
	var payload transcriptPayload
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode transcript json: %v", ErrMalformed, err)
	}
	if payload.Segments == nil {
		return nil, fmt.Errorf("%w: transcript missing required field %q", ErrMalformed, "segments")
	}

	var words []Word
	for i, segment := range *payload.Segments {
		if segment.Words == nil {
			return nil, fmt.Errorf("%w: transcript segment %d missing required field %q", ErrMalformed, i, "words")
		}
		for j, word := range *segment.Words {
			if word.Word == nil {
				return nil, fmt.Errorf("%w: transcript segment %d word %d missing required field %q", ErrMalformed, i, j, "word")
			}
			if word.Start == nil || word.End == nil {
				return nil, fmt.Errorf("%w: transcript segment %d word %d missing start/end timestamps", ErrMalformed, i, j)
			}
			if *word.Start < 0 || *word.End < *word.Start {
				return nil, fmt.Errorf("%w: transcript segment %d word %d has invalid timing %.3f..%.3f", ErrMalformed, i, j, *word.Start, *word.End)
			}
			words = append(words, Word{
				StartMS: truncateToMillis(*word.Start),
				EndMS:   truncateToMillis(*word.End),
				Text:    *word.Word,
			})
		}
	}

	sortWords(words)
	return words, nil
}

// ParseTranscriptFile reads and parses a transcript JSON file.
func ParseTranscriptFile(path string) ([]Word, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()
	words, err := ParseTranscript(file)
	if err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return words, nil
}

// truncateToMillis converts float seconds to whole milliseconds, discarding
// the sub-millisecond remainder. Truncation keeps output deterministic across
// runs; rounding would let platform float differences flip a boundary.
func truncateToMillis(seconds float64) int64 {
	return int64(math.Floor(seconds * 1000))
}

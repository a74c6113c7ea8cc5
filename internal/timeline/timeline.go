package timeline

import (
	"errors"
	"sort"
)

// ErrMalformed marks input that is missing required fields or cannot be
// decoded. Wrapped errors carry the offending segment or line number.
var ErrMalformed = errors.New("malformed timeline input")

// Word is a single transcribed word or short phrase.
type Word struct {
	StartMS int64
	EndMS   int64
	Text    string
}

// Turn is a single speaker turn from the diarization timeline.
type Turn struct {
	StartMS int64
	EndMS   int64
	Speaker string
}

// Cue is a transcript word with its resolved speaker. Attribution guarantees
// a non-empty speaker on every cue it emits.
type Cue struct {
	StartMS int64
	EndMS   int64
	Text    string
	Speaker string
}

func sortWords(words []Word) {
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].StartMS < words[j].StartMS
	})
}

func sortTurns(turns []Turn) {
	sort.SliceStable(turns, func(i, j int) bool {
		return turns[i].StartMS < turns[j].StartMS
	})
}

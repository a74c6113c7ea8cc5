package attribution

import (
	"errors"
	"sort"

	"subweave/internal/timeline"
)

// ErrNoTurns reports a non-empty transcript paired with an empty diarization
// timeline. There is no speaker to fall back to, so attribution cannot
// produce the guaranteed non-empty label.
var ErrNoTurns = errors.New("attribution: no diarization turns to assign from")

// Assign resolves a speaker for every word. Words and turns must be ordered
// by start time (the timeline parsers guarantee this). The inputs are never
// mutated.
func Assign(words []timeline.Word, turns []timeline.Turn) ([]timeline.Cue, error) {
	if len(words) == 0 {
		return nil, nil
	}
	if len(turns) == 0 {
		return nil, ErrNoTurns
	}

	cues := make([]timeline.Cue, 0, len(words))
	cursor := 0
	for _, word := range words {
		// Turns that end at or before this word's start can never overlap
		// this word or any later one, so the cursor only moves forward.
		for cursor < len(turns) && turns[cursor].EndMS <= word.StartMS {
			cursor++
		}

		speaker := dominantSpeaker(word, turns[cursor:])
		if speaker == "" {
			speaker = nearestTurn(turns, word.StartMS).Speaker
		}

		cues = append(cues, timeline.Cue{
			StartMS: word.StartMS,
			EndMS:   word.EndMS,
			Text:    word.Text,
			Speaker: speaker,
		})
	}
	return cues, nil
}

// dominantSpeaker accumulates overlap per speaker across the candidate turns
// and returns the speaker with the largest total. Candidates are ordered by
// start time, so scanning stops at the first turn starting strictly after the
// word ends. Returns "" when nothing overlaps.
func dominantSpeaker(word timeline.Word, candidates []timeline.Turn) string {
	var (
		totals map[string]int64
		order  []string
	)
	for _, turn := range candidates {
		if turn.StartMS > word.EndMS {
			break
		}
		overlap := min(word.EndMS, turn.EndMS) - max(word.StartMS, turn.StartMS)
		if overlap <= 0 {
			continue
		}
		if totals == nil {
			totals = make(map[string]int64, 4)
		}
		if _, seen := totals[turn.Speaker]; !seen {
			order = append(order, turn.Speaker)
		}
		totals[turn.Speaker] += overlap
	}

	best := ""
	var bestTotal int64
	for _, speaker := range order {
		// Strict comparison keeps the first-encountered speaker on ties.
		if totals[speaker] > bestTotal {
			best = speaker
			bestTotal = totals[speaker]
		}
	}
	return best
}

// nearestTurn picks the turn whose start time is closest to startMS. Ties go
// to the earlier turn so leading and trailing gaps resolve the same way on
// every run.
func nearestTurn(turns []timeline.Turn, startMS int64) timeline.Turn {
	idx := sort.Search(len(turns), func(i int) bool {
		return turns[i].StartMS >= startMS
	})
	if idx == 0 {
		return turns[0]
	}
	if idx == len(turns) {
		return turns[len(turns)-1]
	}
	before := turns[idx-1]
	after := turns[idx]
	if startMS-before.StartMS <= after.StartMS-startMS {
		return before
	}
	return after
}

package attribution

import (
	"errors"
	"reflect"
	"testing"

	"subweave/internal/timeline"
)

func words(entries ...timeline.Word) []timeline.Word { return entries }

func turns(entries ...timeline.Turn) []timeline.Turn { return entries }

func speakersOf(cues []timeline.Cue) []string {
	out := make([]string, len(cues))
	for i, cue := range cues {
		out[i] = cue.Speaker
	}
	return out
}

func TestAssignContainedWordGetsEnclosingSpeaker(t *testing.T) {
	cues, err := Assign(
		words(timeline.Word{StartMS: 100, EndMS: 400, Text: "hello"}),
		turns(
			timeline.Turn{StartMS: 0, EndMS: 1000, Speaker: "SPEAKER_00"},
			timeline.Turn{StartMS: 1000, EndMS: 2000, Speaker: "SPEAKER_01"},
		),
	)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if cues[0].Speaker != "SPEAKER_00" {
		t.Fatalf("expected SPEAKER_00, got %q", cues[0].Speaker)
	}
}

func TestAssignPicksMaximumAccumulatedOverlap(t *testing.T) {
	// Word 0..1000 overlaps A for 300ms total across two turns and B for 400ms.
	cues, err := Assign(
		words(timeline.Word{StartMS: 0, EndMS: 1000, Text: "w"}),
		turns(
			timeline.Turn{StartMS: 0, EndMS: 200, Speaker: "A"},
			timeline.Turn{StartMS: 200, EndMS: 600, Speaker: "B"},
			timeline.Turn{StartMS: 600, EndMS: 700, Speaker: "A"},
		),
	)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if cues[0].Speaker != "B" {
		t.Fatalf("expected B with largest accumulated overlap, got %q", cues[0].Speaker)
	}
}

func TestAssignTieBreaksOnDiarizationOrder(t *testing.T) {
	// Both speakers overlap the word for exactly 500ms; the speaker seen
	// first in diarization order must win on every run.
	input := turns(
		timeline.Turn{StartMS: 0, EndMS: 500, Speaker: "FIRST"},
		timeline.Turn{StartMS: 500, EndMS: 1000, Speaker: "SECOND"},
	)
	for run := 0; run < 25; run++ {
		cues, err := Assign(words(timeline.Word{StartMS: 0, EndMS: 1000, Text: "w"}), input)
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if cues[0].Speaker != "FIRST" {
			t.Fatalf("run %d: expected FIRST on tie, got %q", run, cues[0].Speaker)
		}
	}
}

func TestAssignDeterministicAcrossRuns(t *testing.T) {
	ws := words(
		timeline.Word{StartMS: 0, EndMS: 300, Text: "a"},
		timeline.Word{StartMS: 300, EndMS: 900, Text: "b"},
		timeline.Word{StartMS: 900, EndMS: 1500, Text: "c"},
		timeline.Word{StartMS: 2500, EndMS: 2600, Text: "d"},
	)
	ts := turns(
		timeline.Turn{StartMS: 0, EndMS: 600, Speaker: "A"},
		timeline.Turn{StartMS: 600, EndMS: 1200, Speaker: "B"},
		timeline.Turn{StartMS: 1200, EndMS: 2000, Speaker: "C"},
	)

	first, err := Assign(ws, ts)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	for run := 0; run < 10; run++ {
		again, err := Assign(ws, ts)
		if err != nil {
			t.Fatalf("assign run %d: %v", run, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("attribution not deterministic: %v vs %v", first, again)
		}
	}
}

func TestAssignFallsBackToNearestTurn(t *testing.T) {
	ts := turns(
		timeline.Turn{StartMS: 1000, EndMS: 2000, Speaker: "A"},
		timeline.Turn{StartMS: 5000, EndMS: 6000, Speaker: "B"},
	)
	ws := words(
		timeline.Word{StartMS: 0, EndMS: 500, Text: "leading"},    // before all turns
		timeline.Word{StartMS: 2500, EndMS: 2600, Text: "middle"}, // gap, nearer A
		timeline.Word{StartMS: 8000, EndMS: 8500, Text: "trailing"},
	)

	cues, err := Assign(ws, ts)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	got := speakersOf(cues)
	want := []string{"A", "A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fallback speakers = %v, want %v", got, want)
	}
}

func TestAssignEmptyTranscript(t *testing.T) {
	cues, err := Assign(nil, turns(timeline.Turn{StartMS: 0, EndMS: 1000, Speaker: "A"}))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(cues))
	}
}

func TestAssignNoTurns(t *testing.T) {
	_, err := Assign(words(timeline.Word{StartMS: 0, EndMS: 100, Text: "w"}), nil)
	if !errors.Is(err, ErrNoTurns) {
		t.Fatalf("expected ErrNoTurns, got %v", err)
	}
}

func TestAssignLongSessionLinearCursor(t *testing.T) {
	// Alternating half-second turns across a long session; every word lands
	// inside exactly one turn and must get that turn's speaker.
	var ts []timeline.Turn
	var ws []timeline.Word
	for i := 0; i < 2000; i++ {
		speaker := "A"
		if i%2 == 1 {
			speaker = "B"
		}
		start := int64(i) * 500
		ts = append(ts, timeline.Turn{StartMS: start, EndMS: start + 500, Speaker: speaker})
		ws = append(ws, timeline.Word{StartMS: start + 100, EndMS: start + 400, Text: "w"})
	}

	cues, err := Assign(ws, ts)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	for i, cue := range cues {
		want := "A"
		if i%2 == 1 {
			want = "B"
		}
		if cue.Speaker != want {
			t.Fatalf("word %d: expected %s, got %s", i, want, cue.Speaker)
		}
	}
}

package timeline

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDiarization(t *testing.T) {
	input := "0,2000,SPEAKER_00\n2000,3500,SPEAKER_01\n"
	turns, err := ParseDiarization(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse diarization: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Speaker != "SPEAKER_00" || turns[0].EndMS != 2000 {
		t.Fatalf("unexpected first turn: %+v", turns[0])
	}
}

func TestParseDiarizationSkipsHeaderByToken(t *testing.T) {
	input := "start,end,speaker\n0,1000,SPEAKER_00\n"
	turns, err := ParseDiarization(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse diarization: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected header to be skipped, got %d turns", len(turns))
	}
}

func TestParseDiarizationHeaderOnlyWhenFirstFieldIsStart(t *testing.T) {
	// A numeric first line must never be treated as a header.
	input := "0,1000,SPEAKER_00\n1000,2000,SPEAKER_01\n"
	turns, err := ParseDiarization(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse diarization: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected both data rows kept, got %d", len(turns))
	}
}

func TestParseDiarizationSpeakerMayContainCommas(t *testing.T) {
	input := "0,1000,Smith, Jane\n"
	turns, err := ParseDiarization(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse diarization: %v", err)
	}
	if turns[0].Speaker != "Smith, Jane" {
		t.Fatalf("unexpected speaker: %q", turns[0].Speaker)
	}
}

func TestParseDiarizationOrdersByStart(t *testing.T) {
	input := "3000,4000,B\n0,1000,A\n"
	turns, err := ParseDiarization(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse diarization: %v", err)
	}
	if turns[0].Speaker != "A" || turns[1].Speaker != "B" {
		t.Fatalf("expected turns ordered by start, got %+v", turns)
	}
}

func TestParseDiarizationEmptyInput(t *testing.T) {
	turns, err := ParseDiarization(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty input should parse cleanly: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected no turns, got %d", len(turns))
	}
}

func TestParseDiarizationMalformedLines(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing speaker column", "0,1000\n"},
		{"empty speaker", "0,1000, \n"},
		{"non-numeric start", "zero,1000,A\n"},
		{"non-numeric end", "0,soon,A\n"},
		{"negative start", "-5,1000,A\n"},
		{"end not after start", "1000,1000,A\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDiarization(strings.NewReader(tc.input))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if err != nil && !strings.Contains(err.Error(), "line 1") {
				t.Fatalf("expected line number in error, got %v", err)
			}
		})
	}
}

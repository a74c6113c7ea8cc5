package timeline

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTranscriptFlattensWords(t *testing.T) {
	payload := `{
	  "segments": [
	    {"text": "Hi there", "words": [
	      {"word": "Hi", "start": 0.0, "end": 0.5},
	      {"word": "there", "start": 0.5, "end": 1.2}
	    ]},
	    {"text": "friend.", "words": [
	      {"word": "friend.", "start": 1.2, "end": 2.0}
	    ]}
	  ]
	}`

	words, err := ParseTranscript(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("parse transcript: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[1].StartMS != 500 || words[1].EndMS != 1200 {
		t.Fatalf("unexpected timing for second word: %+v", words[1])
	}
	if words[2].Text != "friend." {
		t.Fatalf("unexpected text: %q", words[2].Text)
	}
}

func TestParseTranscriptTruncatesMilliseconds(t *testing.T) {
	payload := `{"segments": [{"words": [{"word": "x", "start": 0.0019, "end": 1.9999}]}]}`
	words, err := ParseTranscript(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("parse transcript: %v", err)
	}
	if words[0].StartMS != 1 {
		t.Fatalf("expected start truncated to 1ms, got %d", words[0].StartMS)
	}
	if words[0].EndMS != 1999 {
		t.Fatalf("expected end truncated to 1999ms, got %d", words[0].EndMS)
	}
}

func TestParseTranscriptEmptySegments(t *testing.T) {
	words, err := ParseTranscript(strings.NewReader(`{"segments": []}`))
	if err != nil {
		t.Fatalf("empty segments should parse cleanly: %v", err)
	}
	if len(words) != 0 {
		t.Fatalf("expected no words, got %d", len(words))
	}
}

func TestParseTranscriptOrdersByStart(t *testing.T) {
	payload := `{"segments": [{"words": [
	  {"word": "b", "start": 2.0, "end": 3.0},
	  {"word": "a", "start": 0.0, "end": 1.0}
	]}]}`
	words, err := ParseTranscript(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("parse transcript: %v", err)
	}
	if words[0].Text != "a" || words[1].Text != "b" {
		t.Fatalf("expected words ordered by start time, got %+v", words)
	}
}

func TestParseTranscriptMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"no segments key", `{}`},
		{"segment without words", `{"segments": [{"text": "hi"}]}`},
		{"word without text", `{"segments": [{"words": [{"start": 0, "end": 1}]}]}`},
		{"word without timing", `{"segments": [{"words": [{"word": "hi"}]}]}`},
		{"negative start", `{"segments": [{"words": [{"word": "hi", "start": -1, "end": 1}]}]}`},
		{"end before start", `{"segments": [{"words": [{"word": "hi", "start": 2, "end": 1}]}]}`},
		{"not json", `segments: nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTranscript(strings.NewReader(tc.payload))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

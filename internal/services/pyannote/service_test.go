package pyannote

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestDiarizeBuildsUVXCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	svc := NewService(Config{HFToken: "hf_test"})
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := svc.Diarize(context.Background(), "audio.wav", "turns.csv"); err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if gotName != UVXCommand {
		t.Fatalf("expected %q command, got %q", UVXCommand, gotName)
	}

	wantPairs := map[string]string{
		"--input":    "audio.wav",
		"--output":   "turns.csv",
		"--hf-token": "hf_test",
	}
	for flag, value := range wantPairs {
		idx := slices.Index(gotArgs, flag)
		if idx < 0 || idx+1 >= len(gotArgs) {
			t.Fatalf("flag %q missing from args %v", flag, gotArgs)
		}
		if gotArgs[idx+1] != value {
			t.Fatalf("flag %q = %q, want %q", flag, gotArgs[idx+1], value)
		}
	}
	if !slices.Contains(gotArgs, "pyannote.audio") {
		t.Fatalf("expected pyannote.audio package in args %v", gotArgs)
	}
	if slices.Contains(gotArgs, "--index-url") {
		t.Fatalf("did not expect CUDA index for CPU run: %v", gotArgs)
	}
}

func TestDiarizePassesSpeakerCount(t *testing.T) {
	var gotArgs []string
	svc := NewService(Config{HFToken: "hf_test", SpeakerCount: 2})
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return nil
	})

	if err := svc.Diarize(context.Background(), "audio.wav", "turns.csv"); err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	idx := slices.Index(gotArgs, "--speaker-count")
	if idx < 0 || gotArgs[idx+1] != "2" {
		t.Fatalf("expected --speaker-count 2 in args %v", gotArgs)
	}
	if slices.Contains(gotArgs, "--min-speakers") || slices.Contains(gotArgs, "--max-speakers") {
		t.Fatalf("speaker bounds should not accompany a fixed count: %v", gotArgs)
	}
}

func TestDiarizePassesSpeakerBounds(t *testing.T) {
	var gotArgs []string
	svc := NewService(Config{HFToken: "hf_test", MinSpeakers: 2, MaxSpeakers: 5})
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return nil
	})

	if err := svc.Diarize(context.Background(), "audio.wav", "turns.csv"); err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	for flag, value := range map[string]string{"--min-speakers": "2", "--max-speakers": "5"} {
		idx := slices.Index(gotArgs, flag)
		if idx < 0 || gotArgs[idx+1] != value {
			t.Fatalf("expected %s %s in args %v", flag, value, gotArgs)
		}
	}
}

func TestDiarizeEnablesCUDAIndex(t *testing.T) {
	var gotArgs []string
	svc := NewService(Config{HFToken: "hf_test", CUDAEnabled: true})
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		gotArgs = args
		return nil
	})

	if err := svc.Diarize(context.Background(), "audio.wav", "turns.csv"); err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	idx := slices.Index(gotArgs, "--index-url")
	if idx < 0 || gotArgs[idx+1] != cudaIndexURL {
		t.Fatalf("expected CUDA index URL in args %v", gotArgs)
	}
}

func TestDiarizeRequiresToken(t *testing.T) {
	svc := NewService(Config{})
	err := svc.Diarize(context.Background(), "audio.wav", "turns.csv")
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestDiarizeRejectsConflictingSpeakerSettings(t *testing.T) {
	svc := NewService(Config{HFToken: "hf_test", SpeakerCount: 2, MinSpeakers: 1})
	err := svc.Diarize(context.Background(), "audio.wav", "turns.csv")
	if !errors.Is(err, ErrSpeakerBounds) {
		t.Fatalf("expected ErrSpeakerBounds, got %v", err)
	}
}

func TestSummarizeStderr(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"empty", "", "no diagnostic output"},
		{"gated", "huggingface_hub.errors.GatedRepoError: 403", "Hugging Face model access denied; accept the terms at https://hf.co/pyannote/speaker-diarization-3.1 and retry"},
		{"error line", "Traceback (most recent call last):\n  ...\nRuntimeError: boom", "RuntimeError: boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := summarizeStderr(tc.input); got != tc.expect {
				t.Fatalf("summarizeStderr(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

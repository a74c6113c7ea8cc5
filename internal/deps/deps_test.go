package deps

import (
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestRequiredListsPipelineBinaries(t *testing.T) {
	cfg := config.Default()
	reqs := Required(&cfg)
	want := map[string]bool{"ffmpeg": false, "ffprobe": false, "uvx": false}
	for _, req := range reqs {
		if _, ok := want[req.Command]; !ok {
			t.Fatalf("unexpected requirement %q", req.Command)
		}
		want[req.Command] = true
	}
	for cmd, seen := range want {
		if !seen {
			t.Fatalf("missing requirement %q", cmd)
		}
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Unset"}})
	if len(results) != 1 || results[0].Available {
		t.Fatalf("expected unavailable status, got %#v", results)
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", results[0].Detail)
	}
}

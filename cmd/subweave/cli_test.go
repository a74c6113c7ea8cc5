package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
staging_dir = %q
log_dir = %q
`, filepath.Join(base, "staging"), filepath.Join(base, "logs"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestConfigInitWritesFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCLI(t, "config", "init", "--path", target); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestQueueListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "Queue is empty")
}

func TestQueueListRejectsUnknownStatus(t *testing.T) {
	configPath := writeTestConfig(t)
	_, err := runCLI(t, "--config", configPath, "queue", "list", "--status", "bogus")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestAlignCommandProducesSRT(t *testing.T) {
	configPath := writeTestConfig(t)
	dir := t.TempDir()

	transcriptPath := filepath.Join(dir, "words.json")
	transcript := `{"segments": [{"words": [
		{"word": "Hello", "start": 0.1, "end": 0.5},
		{"word": "world", "start": 0.6, "end": 1.0}
	]}]}`
	if err := os.WriteFile(transcriptPath, []byte(transcript), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	diarizationPath := filepath.Join(dir, "turns.csv")
	if err := os.WriteFile(diarizationPath, []byte("0,1500,SPEAKER_00\n"), 0o644); err != nil {
		t.Fatalf("write diarization: %v", err)
	}

	srtPath := filepath.Join(dir, "out.srt")
	out, err := runCLI(t, "--config", configPath, "align",
		"--transcript", transcriptPath,
		"--diarization", diarizationPath,
		"--srt-output", srtPath,
	)
	if err != nil {
		t.Fatalf("align: %v", err)
	}
	requireContains(t, out, "Wrote 1 subtitles")

	data, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("read SRT: %v", err)
	}
	requireContains(t, string(data), "[SPEAKER_00]")
	requireContains(t, string(data), "Hello world")
	requireContains(t, string(data), "00:00:00,100 --> 00:00:01,000")
}

func TestAlignCommandRequiresInputs(t *testing.T) {
	configPath := writeTestConfig(t)
	if _, err := runCLI(t, "--config", configPath, "align", "--srt-output", "out.srt"); err == nil {
		t.Fatal("expected error without timeline inputs")
	}
}

package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDiskSpace_OK(t *testing.T) {
	result := CheckDiskSpace("test", t.TempDir(), 1)
	if !result.Passed {
		t.Fatalf("expected pass for 1 byte floor, got: %s", result.Detail)
	}
}

func TestCheckDiskSpace_Insufficient(t *testing.T) {
	// No filesystem has this much free space.
	result := CheckDiskSpace("test", t.TempDir(), 1<<62)
	if result.Passed {
		t.Fatal("expected failure for absurd space floor")
	}
}

func TestCheckHFToken(t *testing.T) {
	cfg := config.Default()
	cfg.Diarization.HFToken = ""
	if result := CheckHFToken(&cfg); result.Passed {
		t.Fatal("expected failure for missing token")
	}
	cfg.Diarization.HFToken = "hf_test"
	if result := CheckHFToken(&cfg); !result.Passed {
		t.Fatalf("expected pass with token set, got: %s", result.Detail)
	}
}

func TestFailedFilters(t *testing.T) {
	results := []Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false},
		{Name: "c", Passed: false},
	}
	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed results, got %d", len(failed))
	}
	if failed[0].Name != "b" || failed[1].Name != "c" {
		t.Fatalf("unexpected failed results: %#v", failed)
	}
}

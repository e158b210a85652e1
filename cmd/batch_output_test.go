package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mlihgenel/gifconverter-cli/internal/converter"
)

func TestResolveBatchOutputPathFreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	reserved := map[string]struct{}{}

	resolved, skipReason, err := resolveBatchOutputPath(path, converter.ConflictOverwrite, reserved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipReason != "" {
		t.Fatalf("expected no skip reason, got %q", skipReason)
	}
	if resolved != path {
		t.Fatalf("expected unchanged path, got %s", resolved)
	}
	if _, taken := reserved[path]; !taken {
		t.Fatalf("expected path to be reserved")
	}
}

func TestResolveBatchOutputPathSkipsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	if err := os.WriteFile(path, []byte("gif"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	_, skipReason, err := resolveBatchOutputPath(path, converter.ConflictSkip, map[string]struct{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipReason == "" {
		t.Fatalf("expected skip reason for existing output")
	}
}

func TestResolveBatchOutputPathRejectsDuplicateTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	reserved := map[string]struct{}{}

	if _, reason, err := resolveBatchOutputPath(path, converter.ConflictOverwrite, reserved); err != nil || reason != "" {
		t.Fatalf("expected first job to claim path, reason=%q err=%v", reason, err)
	}

	_, reason, err := resolveBatchOutputPath(path, converter.ConflictOverwrite, reserved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason == "" {
		t.Fatalf("expected duplicate target to be skipped")
	}
}

func TestResolveBatchOutputPathVersionedAvoidsCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")
	if err := os.WriteFile(path, []byte("gif"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	resolved, reason, err := resolveBatchOutputPath(path, converter.ConflictVersioned, map[string]struct{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != "" {
		t.Fatalf("expected versioned policy not to skip, got %q", reason)
	}
	want := filepath.Join(dir, "out (1).gif")
	if resolved != want {
		t.Fatalf("expected %s, got %s", want, resolved)
	}
}

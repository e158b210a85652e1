package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherBootstrapAndPoll(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.mp4")
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w := NewWatcher(dir, false, time.Second)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	now := time.Now()
	ready, err := w.Poll(now)
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 0 {
		t.Fatalf("expected no ready files after bootstrap")
	}

	newFile := filepath.Join(dir, "new.mp4")
	if err := os.WriteFile(newFile, []byte("new"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	ready, err = w.Poll(now.Add(100 * time.Millisecond))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 0 {
		t.Fatalf("expected no ready files before settle")
	}

	ready, err = w.Poll(now.Add(2 * time.Second))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 1 || ready[0] != newFile {
		t.Fatalf("expected new file ready, got: %#v", ready)
	}

	ready, err = w.Poll(now.Add(3 * time.Second))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 0 {
		t.Fatalf("expected file to be emitted once")
	}
}

func TestWatcherDetectsModifiedFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "mod.mp4")
	if err := os.WriteFile(f, []byte("a"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w := NewWatcher(dir, false, 500*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	base := time.Now()
	if err := os.WriteFile(f, []byte("changed-content"), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}

	ready, err := w.Poll(base.Add(100 * time.Millisecond))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 0 {
		t.Fatalf("expected no ready file before settle")
	}

	ready, err = w.Poll(base.Add(2 * time.Second))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 1 || ready[0] != f {
		t.Fatalf("expected modified file ready once, got: %#v", ready)
	}
}

func TestWatcherIgnoresNonVideoFiles(t *testing.T) {
	dir := t.TempDir()

	w := NewWatcher(dir, false, 100*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "done.gif"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	now := time.Now()
	w.Poll(now)
	ready, err := w.Poll(now.Add(time.Second))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 0 {
		t.Fatalf("expected non-video files to be ignored, got: %#v", ready)
	}
}

func TestWatcherRecursiveScansSubdirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "alt")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	w := NewWatcher(dir, true, 100*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	nested := filepath.Join(sub, "deep.mov")
	if err := os.WriteFile(nested, []byte("v"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	now := time.Now()
	w.Poll(now)
	ready, err := w.Poll(now.Add(time.Second))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 1 || ready[0] != nested {
		t.Fatalf("expected nested file ready, got: %#v", ready)
	}

	// Recursive olmayan watcher aynı dosyayı görmez
	flat := NewWatcher(dir, false, 100*time.Millisecond)
	if err := flat.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	flat.Poll(now)
	ready, err = flat.Poll(now.Add(time.Second))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 0 {
		t.Fatalf("expected flat watcher to skip subdirs, got: %#v", ready)
	}
}

func TestWatcherForgetsDeletedFiles(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "gone.mp4")
	if err := os.WriteFile(f, []byte("v"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w := NewWatcher(dir, false, 100*time.Millisecond)
	if err := w.Bootstrap(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	if err := os.Remove(f); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := w.Poll(time.Now()); err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if _, tracked := w.states[f]; tracked {
		t.Fatalf("expected deleted file to be dropped from state")
	}

	// Aynı adla yeniden olusan dosya yeni dosya gibi islenir
	if err := os.WriteFile(f, []byte("v2"), 0644); err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	now := time.Now()
	w.Poll(now)
	ready, err := w.Poll(now.Add(time.Second))
	if err != nil {
		t.Fatalf("poll failed: %v", err)
	}
	if len(ready) != 1 || ready[0] != f {
		t.Fatalf("expected recreated file ready, got: %#v", ready)
	}
}

func TestWatcherModes(t *testing.T) {
	dir := t.TempDir()

	w := NewWatcher(dir, false, time.Second)
	if w.Mode() != "polling" {
		t.Fatalf("unexpected polling mode name: %s", w.Mode())
	}

	engine, err := NewAdaptiveWatcher(dir, false, time.Second)
	if err != nil {
		// fsnotify desteklenmeyen ortamda polling'e düşer
		if engine.Mode() != "polling" {
			t.Fatalf("expected polling fallback, got %s", engine.Mode())
		}
		return
	}
	if engine.Mode() != "event+polling" {
		t.Fatalf("unexpected event mode name: %s", engine.Mode())
	}
	if ew, ok := engine.(*EventWatcher); ok {
		defer ew.Close()
	}
}

package preview

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"
)

type fakeClip struct {
	mu    sync.Mutex
	info  ClipInfo
	seeks []int
	nexts int
	close int
}

func (c *fakeClip) Info() ClipInfo { return c.info }

func (c *fakeClip) SeekFrame(frame int) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seeks = append(c.seeks, frame)
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (c *fakeClip) NextFrame() (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nexts++
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (c *fakeClip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.close++
	return nil
}

func (c *fakeClip) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.close
}

func (c *fakeClip) lastSeek() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.seeks) == 0 {
		return 0, false
	}
	return c.seeks[len(c.seeks)-1], true
}

type fakeSource struct {
	mu      sync.Mutex
	clips   []*fakeClip
	nextErr error
	rate    float64
	frames  int
}

func (s *fakeSource) Open(path string) (Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.nextErr != nil {
		return nil, s.nextErr
	}
	clip := &fakeClip{info: ClipInfo{Path: path, FrameRate: s.rate, FrameCount: s.frames}}
	s.clips = append(s.clips, clip)
	return clip, nil
}

func newTestEngine(t *testing.T, rate float64, frames int) (*Engine, *fakeSource) {
	t.Helper()
	source := &fakeSource{rate: rate, frames: frames}
	engine := NewEngine(source, NewViewport(8, 8), t.Logf)
	if err := engine.Load("clip.mp4"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return engine, source
}

func waitUntil(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

func TestEngineLoadDrawsFirstFrame(t *testing.T) {
	engine, source := newTestEngine(t, 30, 90)
	defer engine.Release()

	snap := engine.Snapshot()
	if !snap.Loaded {
		t.Fatalf("expected session to be loaded")
	}
	if snap.Playing {
		t.Fatalf("expected paused session after load")
	}
	if snap.CurrentFrame != 0 {
		t.Fatalf("expected frame 0 after load, got %d", snap.CurrentFrame)
	}
	if snap.FrameCount != 90 || snap.FrameRate != 30 {
		t.Fatalf("unexpected clip info: %d frames, %.1f fps", snap.FrameCount, snap.FrameRate)
	}

	clip := source.clips[0]
	if last, ok := clip.lastSeek(); !ok || last != 0 {
		t.Fatalf("expected initial seek to frame 0, got %d (ok=%v)", last, ok)
	}
}

func TestEngineLoadFallsBackToDefaultFrameRate(t *testing.T) {
	engine, _ := newTestEngine(t, 0, 60)
	defer engine.Release()

	snap := engine.Snapshot()
	if snap.FrameRate != defaultFrameRate {
		t.Fatalf("expected fallback frame rate %d, got %.1f", defaultFrameRate, snap.FrameRate)
	}
}

func TestEngineSeekClampsToRange(t *testing.T) {
	engine, _ := newTestEngine(t, 30, 90)
	defer engine.Release()

	engine.Seek(-5)
	if got := engine.Snapshot().CurrentFrame; got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}

	engine.Seek(1000)
	if got := engine.Snapshot().CurrentFrame; got != 89 {
		t.Fatalf("expected clamp to last frame 89, got %d", got)
	}
}

func TestEngineSeekToTimeUpdatesPosition(t *testing.T) {
	engine, _ := newTestEngine(t, 30, 300)
	defer engine.Release()

	engine.SeekToTime(2)
	snap := engine.Snapshot()
	if snap.CurrentFrame != 60 {
		t.Fatalf("expected frame 60 at t=2s, got %d", snap.CurrentFrame)
	}
	if got := engine.CurrentDuration(); got != 2 {
		t.Fatalf("expected current duration 2s, got %f", got)
	}
}

func TestEnginePlaybackStopsAtEnd(t *testing.T) {
	engine, _ := newTestEngine(t, 200, 4)
	defer engine.Release()

	engine.Play()
	waitUntil(t, 2*time.Second, func() bool {
		return !engine.Snapshot().Playing
	})

	snap := engine.Snapshot()
	if snap.CurrentFrame < snap.FrameCount {
		t.Fatalf("expected playback to reach end, stopped at frame %d/%d", snap.CurrentFrame, snap.FrameCount)
	}
}

func TestEnginePauseHoldsFrame(t *testing.T) {
	engine, source := newTestEngine(t, 100, 1000)
	defer engine.Release()

	engine.Play()
	waitUntil(t, time.Second, func() bool {
		source.clips[0].mu.Lock()
		defer source.clips[0].mu.Unlock()
		return source.clips[0].nexts > 0
	})
	engine.Pause()

	frame := engine.Snapshot().CurrentFrame
	time.Sleep(100 * time.Millisecond)
	if got := engine.Snapshot().CurrentFrame; got != frame {
		t.Fatalf("frame advanced while paused: %d -> %d", frame, got)
	}
	if engine.Snapshot().Playing {
		t.Fatalf("expected paused state")
	}
}

func TestEngineSeekWhilePlayingKeepsPlaying(t *testing.T) {
	engine, _ := newTestEngine(t, 2, 1000)
	defer engine.Release()

	engine.Play()
	engine.Seek(500)

	snap := engine.Snapshot()
	if !snap.Playing {
		t.Fatalf("expected playback to continue after seek")
	}
	if snap.CurrentFrame != 500 {
		t.Fatalf("expected frame 500 after seek, got %d", snap.CurrentFrame)
	}

	// Yavaş kare oranında eski tick hemen düşmemeli
	time.Sleep(50 * time.Millisecond)
	if got := engine.Snapshot().CurrentFrame; got != 500 {
		t.Fatalf("stale tick advanced frame after seek: got %d", got)
	}
}

func TestEngineScrubRestoresPlayState(t *testing.T) {
	engine, _ := newTestEngine(t, 2, 1000)
	defer engine.Release()

	engine.Play()
	engine.BeginScrub()

	snap := engine.Snapshot()
	if !snap.Scrubbing {
		t.Fatalf("expected scrubbing state")
	}
	if snap.Playing {
		t.Fatalf("expected playback suspended during scrub")
	}

	engine.Scrub(0.5)
	if got := engine.Snapshot().CurrentFrame; got != 500 {
		t.Fatalf("expected frame 500 during scrub, got %d", got)
	}

	engine.EndScrub(0.25)
	snap = engine.Snapshot()
	if snap.Scrubbing {
		t.Fatalf("expected scrub to end")
	}
	if !snap.Playing {
		t.Fatalf("expected playback to resume after scrub")
	}
	if snap.CurrentFrame != 250 {
		t.Fatalf("expected frame 250 after scrub, got %d", snap.CurrentFrame)
	}
}

func TestEngineScrubFromPauseStaysPaused(t *testing.T) {
	engine, _ := newTestEngine(t, 30, 90)
	defer engine.Release()

	engine.BeginScrub()
	engine.EndScrub(0.5)

	if engine.Snapshot().Playing {
		t.Fatalf("expected session to stay paused after scrub")
	}
}

func TestEngineReleaseIsIdempotent(t *testing.T) {
	engine, source := newTestEngine(t, 30, 90)

	engine.Release()
	engine.Release()

	if got := source.clips[0].closeCount(); got != 1 {
		t.Fatalf("expected clip closed exactly once, got %d", got)
	}
	snap := engine.Snapshot()
	if snap.Loaded || snap.Playing {
		t.Fatalf("expected empty session after release: %+v", snap)
	}
}

func TestEngineLoadReplacesPreviousSession(t *testing.T) {
	engine, source := newTestEngine(t, 30, 90)
	defer engine.Release()

	if err := engine.Load("other.mp4"); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	if got := source.clips[0].closeCount(); got != 1 {
		t.Fatalf("expected first clip to be closed, close count %d", got)
	}
	if got := engine.Snapshot().Path; got != "other.mp4" {
		t.Fatalf("expected new path, got %s", got)
	}
}

func TestEngineLoadErrorLeavesEngineEmpty(t *testing.T) {
	source := &fakeSource{rate: 30, frames: 90, nextErr: errors.New("decode açılamadı")}
	engine := NewEngine(source, NewViewport(8, 8), nil)

	if err := engine.Load("broken.mp4"); err == nil {
		t.Fatalf("expected load error")
	}
	if engine.Snapshot().Loaded {
		t.Fatalf("expected engine to stay empty after failed load")
	}
}

func TestSessionSliderPosition(t *testing.T) {
	s := Session{Position: 5, Duration: 10}
	if got := s.SliderPosition(); got != 0.5 {
		t.Fatalf("expected slider 0.5, got %f", got)
	}

	s = Session{Position: 20, Duration: 10}
	if got := s.SliderPosition(); got != 1 {
		t.Fatalf("expected slider clamp to 1, got %f", got)
	}

	s = Session{Position: 5, Duration: 0}
	if got := s.SliderPosition(); got != 0 {
		t.Fatalf("expected slider 0 for unknown duration, got %f", got)
	}
}

package cmd

import (
	"image"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlihgenel/gifconverter-cli/internal/preview"
)

type stubClip struct {
	info preview.ClipInfo
}

func (c *stubClip) Info() preview.ClipInfo { return c.info }

func (c *stubClip) SeekFrame(frame int) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (c *stubClip) NextFrame() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (c *stubClip) Close() error { return nil }

type stubSource struct{}

func (s *stubSource) Open(path string) (preview.Clip, error) {
	return &stubClip{info: preview.ClipInfo{Path: path, FrameRate: 1, FrameCount: 100}}, nil
}

func newPreviewTestModel(t *testing.T) interactiveModel {
	t.Helper()
	m := newInteractiveModel(nil, false)
	m.selectedFile = "clip.mp4"
	m.viewport = preview.NewViewport(8, 8)
	m.engine = preview.NewEngine(&stubSource{}, m.viewport, t.Logf)
	if err := m.engine.Load("clip.mp4"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	m.state = statePreview
	return m
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPreviewSpaceTogglesPlayback(t *testing.T) {
	m := newPreviewTestModel(t)
	defer m.engine.Release()

	nextModel, _ := m.handlePreviewKey(tea.KeyMsg{Type: tea.KeySpace})
	next := nextModel.(interactiveModel)
	if !next.engine.Snapshot().Playing {
		t.Fatalf("expected playback to start")
	}

	nextModel, _ = next.handlePreviewKey(tea.KeyMsg{Type: tea.KeySpace})
	next = nextModel.(interactiveModel)
	if next.engine.Snapshot().Playing {
		t.Fatalf("expected playback to pause")
	}
}

func TestPreviewArrowKeysStepFrames(t *testing.T) {
	m := newPreviewTestModel(t)
	defer m.engine.Release()

	nextModel, _ := m.handlePreviewKey(tea.KeyMsg{Type: tea.KeyRight})
	next := nextModel.(interactiveModel)
	if got := next.engine.Snapshot().CurrentFrame; got != 1 {
		t.Fatalf("expected frame 1 after right arrow, got %d", got)
	}

	nextModel, _ = next.handlePreviewKey(tea.KeyMsg{Type: tea.KeyLeft})
	next = nextModel.(interactiveModel)
	if got := next.engine.Snapshot().CurrentFrame; got != 0 {
		t.Fatalf("expected frame 0 after left arrow, got %d", got)
	}
}

func TestPreviewTrimKeys(t *testing.T) {
	m := newPreviewTestModel(t)
	defer m.engine.Release()

	// 1 fps klipte kare numarası saniyeye eşittir
	m.engine.Seek(10)
	nextModel, _ := m.handlePreviewKey(runeKey('['))
	next := nextModel.(interactiveModel)
	if next.skipStart != 10 {
		t.Fatalf("expected skipStart 10, got %f", next.skipStart)
	}

	next.engine.Seek(80)
	nextModel, _ = next.handlePreviewKey(runeKey(']'))
	next = nextModel.(interactiveModel)
	if next.skipEnd != 20 {
		t.Fatalf("expected skipEnd 20, got %f", next.skipEnd)
	}

	nextModel, _ = next.handlePreviewKey(runeKey('r'))
	next = nextModel.(interactiveModel)
	if next.skipStart != 0 || next.skipEnd != 0 {
		t.Fatalf("expected trims reset, got %f/%f", next.skipStart, next.skipEnd)
	}
}

func TestPreviewEnterOpensPresetSelect(t *testing.T) {
	m := newPreviewTestModel(t)
	defer m.engine.Release()

	m.engine.Play()
	nextModel, _ := m.handlePreviewKey(tea.KeyMsg{Type: tea.KeyEnter})
	next := nextModel.(interactiveModel)
	if next.state != statePresetSelect {
		t.Fatalf("expected statePresetSelect, got %v", next.state)
	}
	if next.engine.Snapshot().Playing {
		t.Fatalf("expected playback paused before conversion")
	}
}

func TestPreviewScrubFlow(t *testing.T) {
	m := newPreviewTestModel(t)
	defer m.engine.Release()

	nextModel, _ := m.handlePreviewKey(runeKey('s'))
	next := nextModel.(interactiveModel)
	if !next.engine.Snapshot().Scrubbing {
		t.Fatalf("expected scrubbing to start")
	}

	nextModel, _ = next.handlePreviewKey(tea.KeyMsg{Type: tea.KeyRight})
	next = nextModel.(interactiveModel)
	if next.scrubPos <= 0 {
		t.Fatalf("expected scrub position to advance, got %f", next.scrubPos)
	}

	nextModel, _ = next.handlePreviewKey(runeKey('s'))
	next = nextModel.(interactiveModel)
	if next.engine.Snapshot().Scrubbing {
		t.Fatalf("expected scrubbing to end")
	}
}

func TestPreviewWithoutEngineAllowsConversion(t *testing.T) {
	m := newInteractiveModel(nil, false)
	m.selectedFile = "clip.mp4"
	m.state = statePreview
	m.previewErr = "ffmpeg bulunamadı"

	view := m.View()
	if !strings.Contains(view, "Önizleme kullanılamıyor") {
		t.Fatalf("expected preview error message in view")
	}

	nextModel, _ := m.handlePreviewKey(tea.KeyMsg{Type: tea.KeyEnter})
	next := nextModel.(interactiveModel)
	if next.state != statePresetSelect {
		t.Fatalf("expected statePresetSelect without engine, got %v", next.state)
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 4))
	out := renderHalfBlocks(img)

	if got := strings.Count(out, "▀"); got != 4 {
		t.Fatalf("expected 4 half-block cells, got %d", got)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("expected 2 output rows, got %d", got)
	}
	if !strings.Contains(out, "\x1b[0m") {
		t.Fatalf("expected ANSI reset at line end")
	}
}

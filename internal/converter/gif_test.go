package converter

import (
	"strings"
	"testing"

	"github.com/mlihgenel/gifconverter-cli/internal/profile"
)

func TestFilterGraphDefaultPreset(t *testing.T) {
	got := FilterGraph(profile.Default())
	want := "fps=8,scale=240:-1:flags=lanczos,split[s0][s1];[s0]palettegen=max_colors=16[p];[s1][p]paletteuse=dither=bayer:bayer_scale=3"
	if got != want {
		t.Fatalf("unexpected filter graph:\n got: %s\nwant: %s", got, want)
	}
}

func TestFilterGraphUsesPresetParameters(t *testing.T) {
	p := profile.Preset{FPS: 15, Width: 320, MaxColors: 32, BayerScale: 2}
	got := FilterGraph(p)
	for _, part := range []string{"fps=15", "scale=320:-1", "max_colors=32", "bayer_scale=2"} {
		if !strings.Contains(got, part) {
			t.Fatalf("expected graph to contain %q, got: %s", part, got)
		}
	}
}

func TestEncodeArgsWithSeekWindow(t *testing.T) {
	args := EncodeArgs("in.mp4", "out.gif", 10, 80, "GRAPH")
	want := []string{"-ss", "10", "-to", "80", "-i", "in.mp4", "-vf", "GRAPH", "-y", "out.gif"}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d: expected %q, got %q", i, want[i], args[i])
		}
	}
}

func TestEncodeArgsWithoutSeekWindow(t *testing.T) {
	args := EncodeArgs("in.mp4", "out.gif", 0, 0, "GRAPH")
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-ss") || strings.Contains(joined, "-to") {
		t.Fatalf("expected no seek flags for unknown window, got: %s", joined)
	}
	if args[0] != "-i" {
		t.Fatalf("expected args to start with -i, got %s", args[0])
	}
}

func TestFormatSecondsTrimsTrailingZeros(t *testing.T) {
	cases := map[float64]string{
		10:    "10",
		12.5:  "12.5",
		0.25:  "0.25",
		1.125: "1.125",
	}
	for value, want := range cases {
		if got := formatSeconds(value); got != want {
			t.Fatalf("formatSeconds(%f) = %s, want %s", value, got, want)
		}
	}
}

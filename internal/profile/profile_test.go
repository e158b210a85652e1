package profile

import (
	"sort"
	"strings"
	"testing"
)

func TestDefaultPresetValues(t *testing.T) {
	p := Default()
	if p.Name != "default" {
		t.Fatalf("expected default preset, got %s", p.Name)
	}
	if p.FPS != 8 || p.Width != 240 || p.MaxColors != 16 || p.BayerScale != 3 {
		t.Fatalf("unexpected default parameters: %+v", p)
	}
}

func TestResolveEmptyNameReturnsDefault(t *testing.T) {
	p, err := Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "default" {
		t.Fatalf("expected default preset, got %s", p.Name)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	p, err := Resolve("  HD ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "hd" {
		t.Fatalf("expected hd preset, got %s", p.Name)
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := Resolve("ultra")
	if err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	if !strings.Contains(err.Error(), "ultra") {
		t.Fatalf("expected error to name the preset, got: %v", err)
	}
}

func TestNamesAreSorted(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("expected 4 builtin presets, got %d", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestAllMatchesNamesOrder(t *testing.T) {
	names := Names()
	presets := All()
	if len(presets) != len(names) {
		t.Fatalf("expected %d presets, got %d", len(names), len(presets))
	}
	for i, p := range presets {
		if p.Name != names[i] {
			t.Fatalf("preset %d: expected %s, got %s", i, names[i], p.Name)
		}
		if p.FPS <= 0 || p.Width <= 0 || p.MaxColors <= 0 {
			t.Fatalf("preset %s has invalid parameters: %+v", p.Name, p)
		}
	}
}

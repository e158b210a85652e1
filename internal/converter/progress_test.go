package converter

import (
	"math"
	"testing"
)

func TestScanDuration(t *testing.T) {
	line := "  Duration: 00:01:40.05, start: 0.000000, bitrate: 1205 kb/s"
	sec, ok := ScanDuration(line)
	if !ok {
		t.Fatalf("expected duration match")
	}
	if math.Abs(sec-100.05) > 1e-9 {
		t.Fatalf("expected 100.05 seconds, got %f", sec)
	}
}

func TestScanDurationNoMatch(t *testing.T) {
	if _, ok := ScanDuration("Stream #0:0: Video: h264"); ok {
		t.Fatalf("expected no match on stream line")
	}
}

func TestScanProgressTime(t *testing.T) {
	line := "frame=  120 fps= 30 q=20.0 size=  256KiB time=00:00:35.00 bitrate= 512.0kbits/s speed=1.2x"
	sec, ok := ScanProgressTime(line)
	if !ok {
		t.Fatalf("expected progress time match")
	}
	if sec != 35 {
		t.Fatalf("expected 35 seconds, got %f", sec)
	}
}

func TestScanProgressTimeIgnoresDurationLine(t *testing.T) {
	if _, ok := ScanProgressTime("  Duration: 00:01:40.05, start: 0.000000"); ok {
		t.Fatalf("expected duration line not to match progress pattern")
	}
}

func TestProgressPercent(t *testing.T) {
	// Süre 100, baştan 10 sondan 20 atlanınca etkili pencere 70 sn.
	// time=00:00:35 kesilen akışın yarısıdır.
	if got := ProgressPercent(35, 70); got != 50 {
		t.Fatalf("expected 50%%, got %f", got)
	}
	if got := ProgressPercent(120, 70); got != 100 {
		t.Fatalf("expected clamp to 100%%, got %f", got)
	}
	if got := ProgressPercent(35, 0); got != 0 {
		t.Fatalf("expected 0%% for unknown duration, got %f", got)
	}
}

func TestProgressCoalescerSuppressesSmallSteps(t *testing.T) {
	c := newProgressCoalescer()

	if !c.Step(49.7) {
		t.Fatalf("expected first value to pass")
	}
	if c.Step(50.1) {
		t.Fatalf("expected 0.4 point change to be suppressed")
	}
	if !c.Step(51.0) {
		t.Fatalf("expected 1.3 point change to pass")
	}
	if c.Step(50.8) {
		t.Fatalf("expected small backwards change to be suppressed")
	}
}

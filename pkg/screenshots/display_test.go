package screenshots

import (
	"errors"
	"image"
	"testing"
	"time"
)

func TestResolveMonitorSelectors(t *testing.T) {
	displays := twoDisplays()

	all, err := ResolveMonitor(displays, 0)
	if err != nil {
		t.Fatalf("resolve all: %v", err)
	}
	if all != image.Rect(0, 0, 720, 300) {
		t.Fatalf("unexpected union bounds: %v", all)
	}

	second, err := ResolveMonitor(displays, 2)
	if err != nil {
		t.Fatalf("resolve second: %v", err)
	}
	if second != displays[1].Bounds {
		t.Fatalf("unexpected second display bounds: %v", second)
	}

	if _, err := ResolveMonitor(displays, 3); !errors.Is(err, ErrMonitorOutOfRange) {
		t.Fatalf("expected out of range error, got %v", err)
	}
	if _, err := ResolveMonitor(nil, 1); !errors.Is(err, ErrNoDisplays) {
		t.Fatalf("expected no displays error, got %v", err)
	}
}

func TestTimestampedPathUsesMillisecondStamp(t *testing.T) {
	at := time.Date(2024, 7, 9, 14, 3, 5, 42_900_000, time.Local)

	if got := FormatTimestamp(at); got != "20240709_140305_042" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	if got := TimestampedPath("shots", at); got != "shots/screenshot_20240709_140305_042.jpg" && got != `shots\screenshot_20240709_140305_042.jpg` {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestDownsampleFloorsDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 101, 3))
	dst := Downsample(src, 0.5)
	if dst.Bounds().Dx() != 50 || dst.Bounds().Dy() != 1 {
		t.Fatalf("unexpected dimensions %v", dst.Bounds())
	}
}

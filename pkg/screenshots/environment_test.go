package screenshots

import (
	"context"
	"image"
	"testing"
)

type staticBackend struct {
	displays []Display
	err      error
}

func (b staticBackend) Name() string { return "static" }

func (b staticBackend) Displays() ([]Display, error) { return b.displays, b.err }

func (b staticBackend) Grab(ctx context.Context, bounds image.Rectangle) (*image.RGBA, error) {
	return image.NewRGBA(bounds), nil
}

func TestDetectEnvironmentResolvesMonitor(t *testing.T) {
	backend := staticBackend{displays: []Display{
		{Index: 1, Bounds: image.Rect(0, 0, 1920, 1080)},
		{Index: 2, Bounds: image.Rect(1920, 0, 3840, 1080)},
	}}

	env := DetectEnvironment(backend, 2)
	if env.Provider != "static" {
		t.Fatalf("expected provider name, got %q", env.Provider)
	}
	if env.Permission == "" {
		t.Fatalf("expected permission string")
	}
	if !env.Resolved {
		t.Fatalf("expected monitor 2 to resolve: %s", env.Message)
	}
	if len(env.Displays) != 2 {
		t.Fatalf("expected displays to be reported, got %d", len(env.Displays))
	}
}

func TestDetectEnvironmentFlagsMissingMonitor(t *testing.T) {
	backend := staticBackend{displays: []Display{{Index: 1, Bounds: image.Rect(0, 0, 800, 600)}}}

	env := DetectEnvironment(backend, 2)
	if env.Available || env.Resolved {
		t.Fatalf("expected monitor 2 to be unavailable with one display")
	}
	if env.Guidance == "" {
		t.Fatalf("expected guidance for unresolved monitor")
	}
}

func TestDetectEnvironmentReportsBackendError(t *testing.T) {
	env := DetectEnvironment(staticBackend{err: ErrUnavailable}, 1)
	if env.Available {
		t.Fatalf("expected unavailable environment")
	}
	if env.Message == "" {
		t.Fatalf("expected message")
	}
}

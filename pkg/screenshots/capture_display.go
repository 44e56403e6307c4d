//go:build !headless

package screenshots

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

type displayBackend struct{}

// DefaultBackend returns the platform framebuffer grabber.
func DefaultBackend() (Backend, error) {
	return displayBackend{}, nil
}

func (displayBackend) Name() string { return "kbinani/screenshot" }

func (displayBackend) Displays() ([]Display, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoDisplays
	}
	displays := make([]Display, 0, n)
	for i := 0; i < n; i++ {
		displays = append(displays, Display{Index: i + 1, Bounds: screenshot.GetDisplayBounds(i)})
	}
	return displays, nil
}

func (displayBackend) Grab(ctx context.Context, bounds image.Rectangle) (*image.RGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if bounds.Empty() {
		return nil, fmt.Errorf("capture bounds %v are empty", bounds)
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture rect %v: %w", bounds, err)
	}
	return img, nil
}

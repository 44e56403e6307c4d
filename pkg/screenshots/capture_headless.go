//go:build headless

package screenshots

import (
	"context"
	"image"
)

type headlessBackend struct{}

// DefaultBackend returns a backend that reports ErrUnavailable for every call.
func DefaultBackend() (Backend, error) {
	return headlessBackend{}, nil
}

func (headlessBackend) Name() string { return "headless" }

func (headlessBackend) Displays() ([]Display, error) {
	return nil, ErrUnavailable
}

func (headlessBackend) Grab(context.Context, image.Rectangle) (*image.RGBA, error) {
	return nil, ErrUnavailable
}

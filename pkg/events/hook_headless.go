//go:build headless

package events

import "context"

type headlessSource struct{}

// DefaultSource returns a source that cannot subscribe to input.
func DefaultSource() Source {
	return headlessSource{}
}

func (headlessSource) Listen(context.Context, Handler) error {
	return ErrUnavailable
}

func (headlessSource) Position() (float64, float64) {
	return 0, 0
}

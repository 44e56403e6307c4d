package events

import (
	"context"
	"time"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// PointerEvent is a single button transition at screen coordinates.
type PointerEvent struct {
	X       float64
	Y       float64
	Button  Button
	Pressed bool
	When    time.Time
}

// IsLeftPress reports whether the event is a left-button press.
func (e PointerEvent) IsLeftPress() bool {
	return e.Pressed && e.Button == ButtonLeft
}

// Handler receives pointer events on the listener goroutine.
type Handler func(PointerEvent)

// Source subscribes to pointer input and reads the live cursor position.
type Source interface {
	// Listen delivers events to handler until ctx is cancelled, then tears the
	// subscription down. It blocks for the lifetime of the subscription.
	Listen(ctx context.Context, handler Handler) error
	// Position returns the cursor location at call time.
	Position() (x, y float64)
}

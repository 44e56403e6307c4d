//go:build !headless

package events

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// gohook keeps process-global state, so only one subscription may exist.
var hookActive atomic.Bool

type hookSource struct{}

// DefaultSource returns the OS-level pointer source.
func DefaultSource() Source {
	return hookSource{}
}

func (hookSource) Listen(ctx context.Context, handler Handler) error {
	if !hookActive.CompareAndSwap(false, true) {
		return ErrListenerActive
	}
	defer hookActive.Store(false)

	stream := hook.Start()
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-stream:
			if !ok {
				return ErrListenerStopped
			}
			if ev, ok := translate(raw); ok {
				handler(ev)
			}
		}
	}
}

func (hookSource) Position() (float64, float64) {
	x, y := robotgo.Location()
	return float64(x), float64(y)
}

// translate maps gohook button events onto PointerEvent. gohook follows
// libuiohook numbering: MouseHold is the press, MouseDown the release.
func translate(raw hook.Event) (PointerEvent, bool) {
	var pressed bool
	switch raw.Kind {
	case hook.MouseHold:
		pressed = true
	case hook.MouseDown:
		pressed = false
	default:
		return PointerEvent{}, false
	}
	when := raw.When
	if when.IsZero() {
		when = time.Now()
	}
	return PointerEvent{
		X:       float64(raw.X),
		Y:       float64(raw.Y),
		Button:  buttonFromHook(raw.Button),
		Pressed: pressed,
		When:    when,
	}, true
}

func buttonFromHook(code uint16) Button {
	switch code {
	case hook.MouseMap["left"]:
		return ButtonLeft
	case hook.MouseMap["center"]:
		return ButtonMiddle
	case hook.MouseMap["right"]:
		return ButtonRight
	default:
		return ButtonUnknown
	}
}

package events

import "errors"

var (
	// ErrUnavailable indicates the binary was built without an input hook backend.
	ErrUnavailable = errors.New("pointer input hook unavailable in this build")
	// ErrListenerActive is returned when a second hook subscription is attempted.
	ErrListenerActive = errors.New("pointer listener already running")
	// ErrListenerStopped is returned when the OS hook closes its event stream unexpectedly.
	ErrListenerStopped = errors.New("pointer listener stopped unexpectedly")
)

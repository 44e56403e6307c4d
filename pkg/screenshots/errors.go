package screenshots

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the binary was built without a display backend.
	ErrUnavailable = errors.New("screen capture backend unavailable in this build")
	// ErrNoDisplays is returned when the backend enumerates zero active displays.
	ErrNoDisplays = errors.New("no active displays found")
	// ErrMonitorOutOfRange is returned when the monitor selector names a display that does not exist.
	ErrMonitorOutOfRange = errors.New("monitor selector out of range")
)

type monitorRangeError struct {
	monitor int
	count   int
}

func (e *monitorRangeError) Error() string {
	return fmt.Sprintf("monitor %d requested but only %d display(s) are active (0 selects all)", e.monitor, e.count)
}

func (e *monitorRangeError) Is(target error) bool {
	return target == ErrMonitorOutOfRange
}

package screenshots

import (
	"errors"

	"github.com/offlinefirst/clickcollect/pkg/permissions"
)

// Environment describes screenshot capture availability for a monitor selector.
type Environment struct {
	Provider   string
	Available  bool
	Permission string
	Message    string
	Guidance   string
	Displays   []Display
	Monitor    int
	Resolved   bool
}

// DetectEnvironment reports backend support, permission state and how the
// monitor selector resolves against the currently active displays.
func DetectEnvironment(backend Backend, monitor int) Environment {
	probe := permissions.ProbeScreenRecording(nil)
	env := Environment{
		Provider:   backend.Name(),
		Permission: probe.StatusString(),
		Message:    probe.Message,
		Guidance:   probe.Guidance,
		Available:  probe.Usable(),
		Monitor:    monitor,
	}

	displays, err := backend.Displays()
	if err != nil {
		env.Available = false
		env.Message = err.Error()
		if errors.Is(err, ErrUnavailable) {
			env.Guidance = "rebuild without the headless tag to enable display capture"
		}
		return env
	}
	env.Displays = displays

	if _, err := ResolveMonitor(displays, monitor); err != nil {
		env.Available = false
		env.Message = err.Error()
		env.Guidance = "set MONITOR_ID or capture.monitor_id to a listed display index"
		return env
	}
	env.Resolved = true
	if env.Message == "" {
		env.Message = "display capture ready"
	}
	return env
}

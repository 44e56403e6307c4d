package events

import (
	"runtime"

	"github.com/offlinefirst/clickcollect/pkg/permissions"
)

const providerHeadless = "headless"

// Environment summarises pointer hook backend support.
type Environment struct {
	Provider   string
	Available  bool
	Permission string
	Message    string
	Guidance   string
}

// DetectEnvironment reports whether a global pointer hook can be installed.
func DetectEnvironment() Environment {
	probe := permissions.ProbeInputMonitoring(nil)
	env := Environment{
		Provider:   providerName,
		Permission: probe.StatusString(),
		Message:    probe.Message,
		Guidance:   probe.Guidance,
		Available:  probe.Usable() && providerName != providerHeadless,
	}
	if providerName == providerHeadless {
		env.Message = ErrUnavailable.Error()
		env.Guidance = "rebuild without the headless tag to enable input hooks"
	}
	if env.Message == "" {
		env.Message = "pointer hook ready on " + runtime.GOOS
	}
	return env
}

package permissions

import (
	"os"
	"runtime"
	"strings"
)

// Status enumerates coarse permission results for OS capture prompts.
type Status string

const (
	// StatusUnknown indicates no explicit signal about permission state.
	StatusUnknown Status = "unknown"
	// StatusGranted signals that permission was previously granted.
	StatusGranted Status = "granted"
	// StatusDenied indicates the user has explicitly denied access.
	StatusDenied Status = "denied"
	// StatusPromptRequired means the platform will prompt at runtime.
	StatusPromptRequired Status = "prompt"
	// StatusUnavailable reports that the capability is not supported.
	StatusUnavailable Status = "unavailable"
)

// Environment variables that pin a probe result, mostly for CI and support sessions.
const (
	EnvScreenRecording = "CLICKCOLLECT_SCREEN_RECORDING"
	EnvInputMonitoring = "CLICKCOLLECT_INPUT_MONITORING"
)

// ProbeResult represents the coarse state for a permission surface.
type ProbeResult struct {
	Status   Status
	Message  string
	Guidance string
}

// LookupEnvFunc exposes environment probing for testability.
type LookupEnvFunc func(string) (string, bool)

// lookupEnv is declared for swapping in tests.
var lookupEnv LookupEnvFunc = os.LookupEnv

// goos is declared for swapping in tests.
var goos = runtime.GOOS

// ProbeScreenRecording inspects the execution environment for screen capture permissions.
func ProbeScreenRecording(lookup LookupEnvFunc) ProbeResult {
	if lookup == nil {
		lookup = lookupEnv
	}
	if value, ok := lookup(EnvScreenRecording); ok {
		return interpretPermissionFlag("screen recording", value)
	}
	switch goos {
	case "darwin":
		return ProbeResult{
			Status:   StatusPromptRequired,
			Message:  "awaiting macOS screen recording authorisation",
			Guidance: "grant access under System Settings > Privacy & Security > Screen Recording",
		}
	case "linux":
		if isWayland(lookup) {
			return ProbeResult{
				Status:   StatusUnavailable,
				Message:  "wayland session detected; X11 screen grabbing is unavailable",
				Guidance: "log in with an X11 session or run under XWayland",
			}
		}
		return ProbeResult{Status: StatusGranted, Message: "X11 display grabbing needs no prompt"}
	case "windows":
		return ProbeResult{Status: StatusGranted, Message: "GDI capture needs no prompt"}
	default:
		return ProbeResult{Status: StatusUnavailable, Message: "screen recording unsupported on this platform"}
	}
}

// ProbeInputMonitoring reports whether global pointer hooks can be installed.
func ProbeInputMonitoring(lookup LookupEnvFunc) ProbeResult {
	if lookup == nil {
		lookup = lookupEnv
	}
	if value, ok := lookup(EnvInputMonitoring); ok {
		return interpretPermissionFlag("input monitoring", value)
	}
	switch goos {
	case "darwin":
		return ProbeResult{
			Status:   StatusPromptRequired,
			Message:  "accessibility trust required for global mouse hooks",
			Guidance: "grant access under System Settings > Privacy & Security > Accessibility",
		}
	case "linux":
		if isWayland(lookup) {
			return ProbeResult{
				Status:   StatusUnavailable,
				Message:  "wayland session detected; global pointer hooks only see XWayland clients",
				Guidance: "log in with an X11 session",
			}
		}
		return ProbeResult{Status: StatusGranted, Message: "X11 record extension needs no prompt"}
	case "windows":
		return ProbeResult{Status: StatusGranted, Message: "low-level mouse hooks need no prompt"}
	default:
		return ProbeResult{Status: StatusUnavailable, Message: "input hooks unsupported on this platform"}
	}
}

func isWayland(lookup LookupEnvFunc) bool {
	if value, ok := lookup("XDG_SESSION_TYPE"); ok && strings.EqualFold(strings.TrimSpace(value), "wayland") {
		return true
	}
	if value, ok := lookup("WAYLAND_DISPLAY"); ok && strings.TrimSpace(value) != "" {
		if display, ok := lookup("DISPLAY"); !ok || strings.TrimSpace(display) == "" {
			return true
		}
	}
	return false
}

func interpretPermissionFlag(name, value string) ProbeResult {
	normalised := strings.ToLower(strings.TrimSpace(value))
	switch normalised {
	case "granted", "allow", "allowed", "yes", "true":
		return ProbeResult{Status: StatusGranted, Message: name + " permission pre-authorised via env override"}
	case "denied", "no", "false", "blocked":
		return ProbeResult{Status: StatusDenied, Message: name + " permission denied via env override", Guidance: "re-grant the permission in system settings or update CLICKCOLLECT_* env to re-test"}
	case "prompt", "ask":
		return ProbeResult{Status: StatusPromptRequired, Message: name + " permission will prompt at runtime"}
	case "unavailable", "unsupported":
		return ProbeResult{Status: StatusUnavailable, Message: name + " permission unavailable on this platform"}
	default:
		return ProbeResult{Status: StatusUnknown, Message: name + " permission state unknown"}
	}
}

// Usable reports whether capture should be attempted at all.
func (p ProbeResult) Usable() bool {
	return p.Status != StatusDenied && p.Status != StatusUnavailable
}

// StatusString returns the string representation used in doctor output.
func (p ProbeResult) StatusString() string {
	if p.Status == "" {
		return string(StatusUnknown)
	}
	return string(p.Status)
}

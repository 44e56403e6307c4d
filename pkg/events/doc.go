// Package events delivers global pointer input to the collector. The default
// source installs an OS-level hook through gohook and reads the live cursor
// through robotgo; builds tagged headless swap in a stub that reports
// ErrUnavailable.
package events

//go:build !headless

package events

const providerName = "gohook"

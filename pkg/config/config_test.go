package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.OutputDir != filepath.Join("data", "text") {
		t.Fatalf("expected default output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.ScreenshotDir != filepath.Join("data", "images") {
		t.Fatalf("expected default screenshot dir, got %q", cfg.Paths.ScreenshotDir)
	}
	if cfg.Source != "<defaults>" {
		t.Fatalf("expected default source marker, got %q", cfg.Source)
	}
	if cfg.Capture.MonitorID != 2 {
		t.Fatalf("unexpected default monitor: %d", cfg.Capture.MonitorID)
	}
	if cfg.Capture.Interval != 500*time.Millisecond {
		t.Fatalf("unexpected default interval: %s", cfg.Capture.Interval)
	}
	if cfg.Capture.PollInterval != 10*time.Millisecond {
		t.Fatalf("unexpected default poll interval: %s", cfg.Capture.PollInterval)
	}
	if cfg.Capture.JPEGQuality != 30 || cfg.Capture.Scale != 0.5 {
		t.Fatalf("unexpected encoding defaults: quality=%d scale=%v", cfg.Capture.JPEGQuality, cfg.Capture.Scale)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfgPath := filepath.Join(dir, "custom.yaml")
	content := "paths:\n  output_dir: out/text\n  screenshot_dir: out/images\ncapture:\n  monitor_id: 1\n  interval: 2s\n  poll_interval: 25ms\n  scale: 0.25\n  jpeg_quality: 55\n  retry_on_failure: true\nlogging:\n  level: DEBUG\n  format: json\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := cfg.Paths.OutputDir; got != filepath.Join("out", "text") {
		t.Fatalf("unexpected output dir: %q", got)
	}
	if got := cfg.Paths.ScreenshotDir; got != filepath.Join("out", "images") {
		t.Fatalf("unexpected screenshot dir: %q", got)
	}
	if cfg.Capture.MonitorID != 1 {
		t.Fatalf("unexpected monitor: %d", cfg.Capture.MonitorID)
	}
	if cfg.Capture.Interval != 2*time.Second {
		t.Fatalf("unexpected interval: %s", cfg.Capture.Interval)
	}
	if cfg.Capture.PollInterval != 25*time.Millisecond {
		t.Fatalf("unexpected poll interval: %s", cfg.Capture.PollInterval)
	}
	if cfg.Capture.Scale != 0.25 || cfg.Capture.JPEGQuality != 55 {
		t.Fatalf("unexpected encoding: scale=%v quality=%d", cfg.Capture.Scale, cfg.Capture.JPEGQuality)
	}
	if !cfg.Capture.RetryOnFailure {
		t.Fatalf("expected retry_on_failure to be enabled")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Source != cfgPath {
		t.Fatalf("expected source %q, got %q", cfgPath, cfg.Source)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	chdir(t, t.TempDir())

	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadHonoursEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONITOR_ID", "3")
	t.Setenv("CLICKCOLLECT_CAPTURE_INTERVAL", "750ms")
	t.Setenv("CLICKCOLLECT_LOGGING_FORMAT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Capture.MonitorID != 3 {
		t.Fatalf("expected legacy MONITOR_ID to apply, got %d", cfg.Capture.MonitorID)
	}
	if cfg.Capture.Interval != 750*time.Millisecond {
		t.Fatalf("expected env interval, got %s", cfg.Capture.Interval)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected env log format, got %q", cfg.Logging.Format)
	}
}

func TestPrefixedEnvironmentBeatsLegacyName(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONITOR_ID", "3")
	t.Setenv("CLICKCOLLECT_CAPTURE_MONITOR_ID", "1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Capture.MonitorID != 1 {
		t.Fatalf("expected prefixed variable to win, got %d", cfg.Capture.MonitorID)
	}
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	// Registers MONITOR_ID for restoration; the dotenv loader does not override set values.
	t.Setenv("MONITOR_ID", "")
	os.Unsetenv("MONITOR_ID")

	if err := os.WriteFile(filepath.Join(dir, DefaultEnvFile), []byte("MONITOR_ID=4\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Capture.MonitorID != 4 {
		t.Fatalf("expected monitor from .env, got %d", cfg.Capture.MonitorID)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"empty output":   func(c *Config) { c.Paths.OutputDir = " " },
		"empty shots":    func(c *Config) { c.Paths.ScreenshotDir = "" },
		"negative mon":   func(c *Config) { c.Capture.MonitorID = -1 },
		"zero interval":  func(c *Config) { c.Capture.Interval = 0 },
		"zero poll":      func(c *Config) { c.Capture.PollInterval = 0 },
		"scale too big":  func(c *Config) { c.Capture.Scale = 1.5 },
		"scale zero":     func(c *Config) { c.Capture.Scale = 0 },
		"quality zero":   func(c *Config) { c.Capture.JPEGQuality = 0 },
		"quality high":   func(c *Config) { c.Capture.JPEGQuality = 101 },
		"bad log level":  func(c *Config) { c.Logging.Level = "loud" },
		"bad log format": func(c *Config) { c.Logging.Format = "xml" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestNormalizeHelpers(t *testing.T) {
	if lvl, err := NormalizeLogLevel("WARNING"); err != nil || lvl != "warn" {
		t.Fatalf("unexpected level normalisation: %q %v", lvl, err)
	}
	if format, err := NormalizeFormat("text"); err != nil || format != "console" {
		t.Fatalf("unexpected format normalisation: %q %v", format, err)
	}
	if _, err := NormalizeFormat("yaml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

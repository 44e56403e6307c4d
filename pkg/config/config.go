package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	// DefaultFileName is read from the working directory when no --config is given.
	DefaultFileName = "config.yaml"
	// DefaultEnvFile is loaded into the process environment before resolving settings.
	DefaultEnvFile = ".env"
	// EnvPrefix namespaces environment overrides, e.g. CLICKCOLLECT_CAPTURE_INTERVAL.
	EnvPrefix = "CLICKCOLLECT"
)

// Config captures the user-adjustable knobs for click collection.
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Capture CaptureConfig `mapstructure:"capture"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Source indicates where the configuration originated (defaults or a file path).
	Source string `mapstructure:"-"`
}

// PathsConfig controls where examples and screenshots are written.
type PathsConfig struct {
	OutputDir     string `mapstructure:"output_dir"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
}

// CaptureConfig controls screenshot cadence, the monitor selector and encoding.
type CaptureConfig struct {
	// MonitorID follows the multi-monitor convention: 0 is every display
	// combined, 1..n select a single enumerated display.
	MonitorID    int           `mapstructure:"monitor_id"`
	Interval     time.Duration `mapstructure:"interval"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Scale        float64       `mapstructure:"scale"`
	JPEGQuality  int           `mapstructure:"jpeg_quality"`
	// RetryOnFailure keeps retrying a failed capture on every poll instead of
	// waiting a full interval.
	RetryOnFailure bool `mapstructure:"retry_on_failure"`
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the baseline configuration used when no overrides are supplied.
func Default() Config {
	return Config{
		Paths: PathsConfig{
			OutputDir:     filepath.Join("data", "text"),
			ScreenshotDir: filepath.Join("data", "images"),
		},
		Capture: CaptureConfig{
			MonitorID:    2,
			Interval:     500 * time.Millisecond,
			PollInterval: 10 * time.Millisecond,
			Scale:        0.5,
			JPEGQuality:  30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Source: "<defaults>",
	}
}

// legacyEnv maps keys onto the unprefixed variable names older .env files use.
var legacyEnv = map[string]string{
	"capture.monitor_id":   "MONITOR_ID",
	"paths.output_dir":     "OUTPUT_DIR",
	"paths.screenshot_dir": "SCREENSHOT_DIR",
}

// Load resolves configuration from defaults, an optional YAML file, a .env file
// and the environment, in increasing order of precedence.
// When path is empty, the loader attempts to read ./config.yaml but tolerates a missing file.
func Load(path string) (Config, error) {
	if err := loadEnvFile(DefaultEnvFile); err != nil {
		return Default(), err
	}

	v := newViper()

	candidate := strings.TrimSpace(path)
	explicit := candidate != ""
	if !explicit {
		candidate = DefaultFileName
	}

	source := Default().Source
	if _, err := os.Stat(candidate); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Default(), fmt.Errorf("inspect config file %q: %w", candidate, err)
		}
		if explicit {
			return Default(), fmt.Errorf("config file %q not found", candidate)
		}
	} else {
		v.SetConfigFile(candidate)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Default(), fmt.Errorf("read config file %q: %w", candidate, err)
		}
		source = candidate
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = source
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := Default()
	v.SetDefault("paths.output_dir", defaults.Paths.OutputDir)
	v.SetDefault("paths.screenshot_dir", defaults.Paths.ScreenshotDir)
	v.SetDefault("capture.monitor_id", defaults.Capture.MonitorID)
	v.SetDefault("capture.interval", defaults.Capture.Interval)
	v.SetDefault("capture.poll_interval", defaults.Capture.PollInterval)
	v.SetDefault("capture.scale", defaults.Capture.Scale)
	v.SetDefault("capture.jpeg_quality", defaults.Capture.JPEGQuality)
	v.SetDefault("capture.retry_on_failure", defaults.Capture.RetryOnFailure)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, prefixed, legacy)
	}
	return v
}

// loadEnvFile exports variables from a dotenv file without overriding ones
// already present in the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("inspect env file %q: %w", path, err)
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// Validate ensures essential configuration values are present and sensible.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.ScreenshotDir) == "" {
		return errors.New("paths.screenshot_dir must not be empty")
	}

	if _, err := NormalizeLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := NormalizeFormat(c.Logging.Format); err != nil {
		return err
	}

	if c.Capture.MonitorID < 0 {
		return errors.New("capture.monitor_id must not be negative")
	}
	if c.Capture.Interval <= 0 {
		return errors.New("capture.interval must be positive")
	}
	if c.Capture.PollInterval <= 0 {
		return errors.New("capture.poll_interval must be positive")
	}
	if c.Capture.Scale <= 0 || c.Capture.Scale > 1 {
		return fmt.Errorf("capture.scale must be within (0, 1], got %v", c.Capture.Scale)
	}
	if c.Capture.JPEGQuality < 1 || c.Capture.JPEGQuality > 100 {
		return fmt.Errorf("capture.jpeg_quality must be within [1, 100], got %d", c.Capture.JPEGQuality)
	}

	return nil
}

func (c *Config) normalize() {
	defaults := Default()

	c.Paths.OutputDir = filepath.Clean(strings.TrimSpace(c.Paths.OutputDir))
	c.Paths.ScreenshotDir = filepath.Clean(strings.TrimSpace(c.Paths.ScreenshotDir))
	if c.Paths.OutputDir == "." {
		c.Paths.OutputDir = defaults.Paths.OutputDir
	}
	if c.Paths.ScreenshotDir == "." {
		c.Paths.ScreenshotDir = defaults.Paths.ScreenshotDir
	}

	if lvl, err := NormalizeLogLevel(c.Logging.Level); err == nil {
		c.Logging.Level = lvl
	}
	if format, err := NormalizeFormat(c.Logging.Format); err == nil {
		c.Logging.Format = format
	}
}

// NormalizeLogLevel validates and lowercases known logging levels.
func NormalizeLogLevel(level string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return "info", nil
	case "debug":
		return "debug", nil
	case "warn", "warning":
		return "warn", nil
	case "error":
		return "error", nil
	default:
		return "", fmt.Errorf("unsupported log level %q", level)
	}
}

// NormalizeFormat validates and canonicalizes logging format identifiers.
func NormalizeFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return "json", nil
	case "", "console", "text":
		return "console", nil
	default:
		return "", fmt.Errorf("unsupported log format %q", format)
	}
}

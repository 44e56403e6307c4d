package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/offlinefirst/clickcollect/pkg/capture"
	"github.com/offlinefirst/clickcollect/pkg/config"
	"github.com/offlinefirst/clickcollect/pkg/dataset"
	"github.com/offlinefirst/clickcollect/pkg/events"
	"github.com/offlinefirst/clickcollect/pkg/screenshots"
)

var (
	newBackend       = screenshots.DefaultBackend
	newPointerSource = events.DefaultSource
	notifyContext    = func(parent context.Context) (context.Context, context.CancelFunc) {
		return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	}
)

type collectOptions struct {
	planOnly bool
}

func (o *collectOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.planOnly, "plan-only", false, "Print the resolved configuration without starting capture")
}

func newCollectCommand(root *rootOptions) *cobra.Command {
	opts := &collectOptions{}
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Record clicks paired with screenshots until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, root.app)
		},
	}
	opts.bindFlags(cmd)
	return cmd
}

func (o *collectOptions) run(cmd *cobra.Command, app *AppContext) error {
	if app == nil {
		return errors.New("application context unavailable")
	}
	stdout := cmd.OutOrStdout()
	if o.planOnly {
		return printPlan(app.Config, stdout)
	}

	ctx, stop := notifyContext(cmd.Context())
	defer stop()
	return runCollect(ctx, app, stdout)
}

func runCollect(ctx context.Context, app *AppContext, stdout io.Writer) error {
	cfg := app.Config
	logger := app.Logger

	backend, err := newBackend()
	if err != nil {
		return fmt.Errorf("open screen capture backend: %w", err)
	}
	capturer, err := screenshots.NewCapturer(screenshots.CapturerOptions{
		Backend: backend,
		Monitor: cfg.Capture.MonitorID,
		Scale:   cfg.Capture.Scale,
		Quality: cfg.Capture.JPEGQuality,
		Dir:     cfg.Paths.ScreenshotDir,
	})
	if err != nil {
		return fmt.Errorf("prepare screenshot capture: %w", err)
	}
	writer, err := dataset.NewWriter(cfg.Paths.OutputDir, nil)
	if err != nil {
		return fmt.Errorf("prepare example writer: %w", err)
	}
	controller, err := capture.NewController(capture.ControllerOptions{
		Frames:   capturer,
		Records:  writer,
		Pointer:  newPointerSource(),
		Interval: cfg.Capture.Interval,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("prepare controller: %w", err)
	}

	logger.Info("collection starting",
		"backend", backend.Name(),
		"monitor", cfg.Capture.MonitorID,
		"interval", cfg.Capture.Interval,
		"output_dir", writer.Dir(),
		"screenshot_dir", capturer.Dir(),
	)
	fmt.Fprintln(stdout, "Tracking mouse clicks and taking screenshots. Press Ctrl+C to exit.")

	summary, err := capture.Run(ctx, capture.RunOptions{
		Controller:     controller,
		PollInterval:   cfg.Capture.PollInterval,
		RetryOnFailure: cfg.Capture.RetryOnFailure,
		Logger:         logger,
		Stdout:         stdout,
	})
	if err != nil {
		return fmt.Errorf("collect examples: %w", err)
	}

	fmt.Fprintln(stdout, "\nMouse tracking and screenshot capture stopped.")
	logger.Info("collection summary",
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
		"captures", summary.Captures,
		"records", summary.Clicks.Records,
		"renamed", summary.Clicks.Renamed,
	)
	return nil
}

type planDocument struct {
	Source  string      `yaml:"source"`
	Paths   planPaths   `yaml:"paths"`
	Capture planCapture `yaml:"capture"`
	Logging planLogging `yaml:"logging"`
}

type planPaths struct {
	OutputDir     string `yaml:"output_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

type planCapture struct {
	MonitorID      int     `yaml:"monitor_id"`
	Interval       string  `yaml:"interval"`
	PollInterval   string  `yaml:"poll_interval"`
	Scale          float64 `yaml:"scale"`
	JPEGQuality    int     `yaml:"jpeg_quality"`
	RetryOnFailure bool    `yaml:"retry_on_failure"`
}

type planLogging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func printPlan(cfg config.Config, stdout io.Writer) error {
	doc := planDocument{
		Source: cfg.Source,
		Paths: planPaths{
			OutputDir:     cfg.Paths.OutputDir,
			ScreenshotDir: cfg.Paths.ScreenshotDir,
		},
		Capture: planCapture{
			MonitorID:      cfg.Capture.MonitorID,
			Interval:       cfg.Capture.Interval.String(),
			PollInterval:   cfg.Capture.PollInterval.String(),
			Scale:          cfg.Capture.Scale,
			JPEGQuality:    cfg.Capture.JPEGQuality,
			RetryOnFailure: cfg.Capture.RetryOnFailure,
		},
		Logging: planLogging{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		},
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}

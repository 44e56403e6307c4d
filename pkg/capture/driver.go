package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/offlinefirst/clickcollect/pkg/dataset"
)

// RunOptions control the polling driver.
type RunOptions struct {
	Controller   *Controller
	PollInterval time.Duration
	// RetryOnFailure retries a failed capture on the next poll; otherwise the
	// cadence advances and the next attempt waits a full interval.
	RetryOnFailure bool
	Logger         *slog.Logger
	Stdout         io.Writer
	Clock          func() time.Time
	Sleeper        func(context.Context, time.Duration) error
}

// Summary reports what a collection run did.
type Summary struct {
	StartedAt       time.Time
	FinishedAt      time.Time
	Captures        int
	CaptureFailures int
	Clicks          Stats
	LastClick       *dataset.Click
}

// Run polls the controller until ctx is cancelled. Cancellation is a clean
// shutdown; a failed record write or a broken pointer subscription is returned.
func Run(ctx context.Context, opts RunOptions) (Summary, error) {
	if opts.Controller == nil {
		return Summary{}, errors.New("controller must be provided")
	}
	if opts.Logger == nil {
		return Summary{}, errors.New("logger must be provided")
	}
	if opts.PollInterval <= 0 {
		return Summary{}, errors.New("poll interval must be positive")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	sleeper := opts.Sleeper
	if sleeper == nil {
		sleeper = defaultSleeper
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	c := opts.Controller
	summary := Summary{StartedAt: clock()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.Listen(gctx); err != nil {
			return fmt.Errorf("pointer listener: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		for {
			if gctx.Err() != nil {
				return nil
			}

			now := clock()
			if c.ShouldCapture(now) {
				if _, ok := c.Capture(gctx); ok {
					c.MarkCaptureTime(now)
					summary.Captures++
				} else if gctx.Err() == nil {
					summary.CaptureFailures++
					if !opts.RetryOnFailure {
						c.MarkCaptureTime(now)
					}
				}
			}

			if c.ConsumeClick() {
				x, y := c.CurrentPointerPosition()
				fmt.Fprintf(stdout, "Click recorded at coordinates: %s, %s\n", formatCoord(x), formatCoord(y))
				if click, ok := c.LastClick(); ok {
					opts.Logger.Debug("click consumed", "pointer", dataset.FormatLabel(x, y), "recorded", dataset.FormatLabel(click.X, click.Y), "record", click.RecordPath, "image", click.ImagePath)
				}
			}

			select {
			case err := <-c.WriteErrors():
				return fmt.Errorf("persist example: %w", err)
			default:
			}

			if err := sleeper(gctx, opts.PollInterval); err != nil {
				return nil
			}
		}
	})

	err := g.Wait()
	summary.FinishedAt = clock()
	summary.Clicks = c.Stats()
	if click, ok := c.LastClick(); ok {
		summary.LastClick = &click
	}
	if err != nil {
		opts.Logger.Error("collection stopped with error", "error", err)
		return summary, err
	}
	opts.Logger.Info("collection stopped", "captures", summary.Captures, "capture_failures", summary.CaptureFailures, "clicks", summary.Clicks.Clicks, "records", summary.Clicks.Records)
	return summary, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func defaultSleeper(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

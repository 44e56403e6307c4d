package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/offlinefirst/clickcollect/pkg/dataset"
	"github.com/offlinefirst/clickcollect/pkg/events"
	"github.com/offlinefirst/clickcollect/pkg/screenshots"
)

// FrameWriter refreshes the transient screenshot asset.
type FrameWriter interface {
	Capture(ctx context.Context) (screenshots.Metadata, error)
	GenericPath() string
	Dir() string
}

// RecordWriter persists example records.
type RecordWriter interface {
	Write(ex dataset.Example) (string, error)
}

// ControllerOptions configure a Controller.
type ControllerOptions struct {
	Frames   FrameWriter
	Records  RecordWriter
	Pointer  events.Source
	Interval time.Duration
	Logger   *slog.Logger
	Clock    func() time.Time
}

// Stats counts click handling outcomes since the controller was created.
type Stats struct {
	Clicks          int64
	Records         int64
	Renamed         int64
	RenameFallbacks int64
}

// Controller owns screenshot timing, click state and example serialization.
// ShouldCapture, Capture, MarkCaptureTime and ConsumeClick belong to the
// polling goroutine; OnPointerEvent runs on the listener goroutine.
type Controller struct {
	frames   FrameWriter
	records  RecordWriter
	pointer  events.Source
	interval time.Duration
	logger   *slog.Logger
	clock    func() time.Time

	lastCapture time.Time

	clicked   atomic.Bool
	lastClick atomic.Pointer[dataset.Click]
	writeErrs chan error

	clicks          atomic.Int64
	recordsWritten  atomic.Int64
	renamed         atomic.Int64
	renameFallbacks atomic.Int64
}

// NewController validates options and returns an idle controller.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Frames == nil {
		return nil, errors.New("frame writer must be provided")
	}
	if opts.Records == nil {
		return nil, errors.New("record writer must be provided")
	}
	if opts.Pointer == nil {
		return nil, errors.New("pointer source must be provided")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("capture interval must be positive")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger must be provided")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Controller{
		frames:    opts.Frames,
		records:   opts.Records,
		pointer:   opts.Pointer,
		interval:  opts.Interval,
		logger:    opts.Logger,
		clock:     clock,
		writeErrs: make(chan error, 1),
	}, nil
}

// ShouldCapture reports whether at least one interval has passed since the last capture.
func (c *Controller) ShouldCapture(now time.Time) bool {
	if c.lastCapture.IsZero() {
		return true
	}
	return now.Sub(c.lastCapture) >= c.interval
}

// MarkCaptureTime records now as the last capture time.
func (c *Controller) MarkCaptureTime(now time.Time) {
	c.lastCapture = now
}

// Capture refreshes the transient asset. Failures are logged and reported as
// ok=false; they never abort collection.
func (c *Controller) Capture(ctx context.Context) (string, bool) {
	meta, err := c.frames.Capture(ctx)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("screenshot capture failed", "error", err)
		}
		return "", false
	}
	c.logger.Debug("screenshot captured", "path", meta.ImagePath, "width", meta.Width, "height", meta.Height, "bytes", meta.Bytes)
	return meta.ImagePath, true
}

// OnPointerEvent handles input from the listener goroutine. A left press
// raises the click flag, claims the transient asset and writes a record.
func (c *Controller) OnPointerEvent(ev events.PointerEvent) {
	if !ev.IsLeftPress() {
		return
	}
	c.clicked.Store(true)
	c.clicks.Add(1)

	click, err := c.recordClick(ev)
	if err != nil {
		c.logger.Error("example record write failed", "error", err)
		select {
		case c.writeErrs <- err:
		default:
		}
		return
	}
	c.lastClick.Store(&click)
}

func (c *Controller) recordClick(ev events.PointerEvent) (dataset.Click, error) {
	at := c.clock()
	generic := c.frames.GenericPath()
	click := dataset.Click{X: ev.X, Y: ev.Y, At: at, ImagePath: generic}

	if _, err := os.Stat(generic); err == nil {
		target := screenshots.TimestampedPath(c.frames.Dir(), at)
		if err := os.Rename(generic, target); err != nil {
			c.renameFallbacks.Add(1)
			c.logger.Warn("rename screenshot failed; record keeps the transient path", "error", err, "path", generic)
		} else {
			click.ImagePath = target
			click.Renamed = true
			c.renamed.Add(1)
		}
	} else {
		c.logger.Debug("no transient screenshot at click time", "path", generic)
	}

	path, err := c.records.Write(dataset.NewExample(ev.X, ev.Y, click.ImagePath))
	if err != nil {
		return click, fmt.Errorf("write example for click at %s: %w", dataset.FormatLabel(ev.X, ev.Y), err)
	}
	click.RecordPath = path
	c.recordsWritten.Add(1)
	c.logger.Debug("example recorded", "record", path, "image", click.ImagePath, "label", dataset.FormatLabel(ev.X, ev.Y))
	return click, nil
}

// ConsumeClick atomically reads and clears the click flag.
func (c *Controller) ConsumeClick() bool {
	return c.clicked.Swap(false)
}

// CurrentPointerPosition reads the live cursor, which may have moved since the click.
func (c *Controller) CurrentPointerPosition() (float64, float64) {
	return c.pointer.Position()
}

// LastClick returns the most recent successfully recorded click.
func (c *Controller) LastClick() (dataset.Click, bool) {
	click := c.lastClick.Load()
	if click == nil {
		return dataset.Click{}, false
	}
	return *click, true
}

// Listen subscribes the controller to the pointer source until ctx is done.
func (c *Controller) Listen(ctx context.Context) error {
	return c.pointer.Listen(ctx, c.OnPointerEvent)
}

// WriteErrors delivers record persistence failures from the listener goroutine.
func (c *Controller) WriteErrors() <-chan error {
	return c.writeErrs
}

// Stats returns a snapshot of click handling counters.
func (c *Controller) Stats() Stats {
	return Stats{
		Clicks:          c.clicks.Load(),
		Records:         c.recordsWritten.Load(),
		Renamed:         c.renamed.Load(),
		RenameFallbacks: c.renameFallbacks.Load(),
	}
}

package screenshots

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// CapturerOptions configure a Capturer.
type CapturerOptions struct {
	Backend Backend
	Monitor int
	Scale   float64
	Quality int
	Dir     string
	Clock   func() time.Time
}

// Capturer grabs one monitor, shrinks and compresses the frame, and replaces
// the transient asset on disk.
type Capturer struct {
	backend Backend
	monitor int
	scale   float64
	quality int
	dir     string
	generic string
	clock   func() time.Time
}

// NewCapturer validates options and prepares the screenshot directory.
func NewCapturer(opts CapturerOptions) (*Capturer, error) {
	if opts.Backend == nil {
		return nil, errors.New("capture backend must be provided")
	}
	if opts.Dir == "" {
		return nil, errors.New("screenshot directory must not be empty")
	}
	if opts.Monitor < 0 {
		return nil, fmt.Errorf("monitor selector %d must not be negative", opts.Monitor)
	}
	if opts.Scale <= 0 || opts.Scale > 1 {
		return nil, fmt.Errorf("scale %v outside (0, 1]", opts.Scale)
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, fmt.Errorf("jpeg quality %d outside [1, 100]", opts.Quality)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure screenshot directory: %w", err)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Capturer{
		backend: opts.Backend,
		monitor: opts.Monitor,
		scale:   opts.Scale,
		quality: opts.Quality,
		dir:     opts.Dir,
		generic: GenericPath(opts.Dir),
		clock:   clock,
	}, nil
}

// Dir returns the screenshot directory.
func (c *Capturer) Dir() string { return c.dir }

// GenericPath returns the transient asset path this capturer overwrites.
func (c *Capturer) GenericPath() string { return c.generic }

// Capture writes a fresh transient asset. The frame is staged in a temporary
// sibling file and renamed over the generic path, so readers never observe a
// partially written JPEG.
func (c *Capturer) Capture(ctx context.Context) (Metadata, error) {
	displays, err := c.backend.Displays()
	if err != nil {
		return Metadata{}, fmt.Errorf("enumerate displays: %w", err)
	}
	bounds, err := ResolveMonitor(displays, c.monitor)
	if err != nil {
		return Metadata{}, err
	}

	frame, err := c.backend.Grab(ctx, bounds)
	if err != nil {
		return Metadata{}, fmt.Errorf("grab monitor %d: %w", c.monitor, err)
	}
	capturedAt := c.clock()

	small := Downsample(frame, c.scale)
	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, small, c.quality); err != nil {
		return Metadata{}, err
	}

	if err := c.replaceGeneric(buf.Bytes()); err != nil {
		return Metadata{}, err
	}

	return Metadata{
		CapturedAt:   capturedAt,
		Backend:      c.backend.Name(),
		Monitor:      c.monitor,
		SourceBounds: bounds,
		Width:        small.Bounds().Dx(),
		Height:       small.Bounds().Dy(),
		Bytes:        buf.Len(),
		ImagePath:    c.generic,
	}, nil
}

func (c *Capturer) replaceGeneric(data []byte) error {
	tmp, err := os.CreateTemp(c.dir, ".screenshot-*.tmp")
	if err != nil {
		return fmt.Errorf("stage screenshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write screenshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close screenshot: %w", err)
	}
	if err := os.Rename(tmpName, c.generic); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish screenshot: %w", err)
	}
	return nil
}

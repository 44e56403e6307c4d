package screenshots

import (
	"context"
	"image"
	"time"
)

// Display describes one enumerated monitor in virtual-screen coordinates.
type Display struct {
	Index  int             `json:"index"`
	Bounds image.Rectangle `json:"bounds"`
}

// Backend enumerates displays and grabs framebuffer regions.
type Backend interface {
	Name() string
	Displays() ([]Display, error)
	Grab(ctx context.Context, bounds image.Rectangle) (*image.RGBA, error)
}

// Metadata describes a screenshot asset written to disk.
type Metadata struct {
	CapturedAt   time.Time       `json:"captured_at"`
	Backend      string          `json:"backend"`
	Monitor      int             `json:"monitor"`
	SourceBounds image.Rectangle `json:"source_bounds"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	Bytes        int             `json:"bytes"`
	ImagePath    string          `json:"image_path"`
}

package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// maxNameAttempts bounds the search for a free example_<millis>.json name.
const maxNameAttempts = 1000

// Writer persists examples as one JSON file per record.
type Writer struct {
	dir   string
	clock func() time.Time
}

// NewWriter prepares dir and returns a writer. A nil clock uses time.Now.
func NewWriter(dir string, clock func() time.Time) (*Writer, error) {
	if dir == "" {
		return nil, errors.New("output directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output directory: %w", err)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Writer{dir: dir, clock: clock}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write stores ex as example_<unix-millis>.json. Existing files are never
// overwritten; a same-millisecond collision takes the next free millisecond.
func (w *Writer) Write(ex Example) (string, error) {
	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal example: %w", err)
	}
	data = append(data, '\n')

	millis := w.clock().UnixMilli()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		path := filepath.Join(w.dir, fmt.Sprintf("example_%d.json", millis+int64(attempt)))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("create example %q: %w", path, err)
		}
		if _, err := file.Write(data); err != nil {
			file.Close()
			return "", fmt.Errorf("write example %q: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("close example %q: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free example name near %d in %s", millis, w.dir)
}

package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Load reads and decodes a single example record.
func Load(path string) (Example, error) {
	var ex Example
	data, err := os.ReadFile(path)
	if err != nil {
		return ex, fmt.Errorf("read example: %w", err)
	}
	if err := json.Unmarshal(data, &ex); err != nil {
		return ex, fmt.Errorf("%w: decode %s: %v", ErrMalformedRecord, filepath.Base(path), err)
	}
	return ex, nil
}

// Entry is the validation outcome for one record file.
type Entry struct {
	Path         string
	ImageRef     string
	ImagePresent bool
	Err          error
}

// Report summarises a directory scan.
type Report struct {
	Entries       []Entry
	Valid         int
	Malformed     int
	MissingImages int
}

// Scan validates every example_*.json in dir, sorted by name.
func Scan(dir string) (Report, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "example_*.json"))
	if err != nil {
		return Report{}, fmt.Errorf("list examples: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return Report{}, fmt.Errorf("inspect output directory: %w", err)
	}
	sort.Strings(paths)

	var report Report
	for _, path := range paths {
		entry := Entry{Path: path}
		ex, err := Load(path)
		if err == nil {
			err = ex.Validate()
		}
		if err != nil {
			entry.Err = err
			report.Malformed++
			report.Entries = append(report.Entries, entry)
			continue
		}

		entry.ImageRef, _ = ex.ImageRef()
		if _, statErr := os.Stat(entry.ImageRef); statErr == nil {
			entry.ImagePresent = true
		} else if errors.Is(statErr, os.ErrNotExist) {
			report.MissingImages++
		} else {
			entry.Err = fmt.Errorf("inspect image: %w", statErr)
		}
		report.Valid++
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

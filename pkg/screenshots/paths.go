package screenshots

import (
	"fmt"
	"path/filepath"
	"time"
)

// GenericName is the transient asset overwritten on every capture.
const GenericName = "screenshot.jpg"

// GenericPath returns the transient asset location inside dir.
func GenericPath(dir string) string {
	return filepath.Join(dir, GenericName)
}

// FormatTimestamp renders t as YYYYMMDD_HHMMSS_mmm in local time.
func FormatTimestamp(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%s_%03d", t.Format("20060102_150405"), t.Nanosecond()/int(time.Millisecond))
}

// TimestampedPath returns the permanent asset location for a click at t.
func TimestampedPath(dir string, t time.Time) string {
	return filepath.Join(dir, "screenshot_"+FormatTimestamp(t)+".jpg")
}

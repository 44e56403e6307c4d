package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSONLoggerWritesStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Debug("capture written", "path", "data/images/screenshot.jpg")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record %q: %v", buf.String(), err)
	}
	if record["msg"] != "capture written" {
		t.Fatalf("unexpected message: %v", record["msg"])
	}
	if record["path"] != "data/images/screenshot.jpg" {
		t.Fatalf("unexpected path attr: %v", record["path"])
	}
	ts, ok := record["time"].(string)
	if !ok || !strings.HasSuffix(ts, "Z") {
		t.Fatalf("expected UTC timestamp, got %v", record["time"])
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.Info("ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	logger.Warn("capture failed")
	if !strings.Contains(buf.String(), "capture failed") {
		t.Fatalf("expected warn record, got %q", buf.String())
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := New(Options{Level: "verbose"}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWithSessionTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	base, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger, id := WithSession(base)
	if id == "" {
		t.Fatalf("expected session id")
	}
	logger.Info("started")
	if !strings.Contains(buf.String(), id) {
		t.Fatalf("expected session id in %q", buf.String())
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	setOutput(&buf)
	t.Cleanup(func() {
		setOutput(os.Stdout)
		Init("info")
	})
	return &buf
}

func TestInitAndLevelString(t *testing.T) {
	t.Cleanup(func() { Init("info") })
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Infow("info-kv", "k", "v")
	Warnf("warn-msg")
	Errorw("error-kv", "collection", "product")

	out := buf.String()
	if strings.Contains(out, "debug-msg") || strings.Contains(out, "info-msg") || strings.Contains(out, "info-kv") {
		t.Fatalf("messages below warn should be suppressed: %q", out)
	}
	if !strings.Contains(out, "level=WARN msg=warn-msg") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "level=ERROR msg=error-kv collection=product") {
		t.Fatalf("error kv line missing: %q", out)
	}
}

func TestPrintfFormatting(t *testing.T) {
	buf := capture(t)
	Init("info")
	Infof("listening on %s", "0.0.0.0:8000")
	if !strings.Contains(buf.String(), `msg="listening on 0.0.0.0:8000"`) {
		t.Fatalf("formatted message missing: %q", buf.String())
	}
}

func TestKeyValueOddArguments(t *testing.T) {
	buf := capture(t)
	Init("info")
	Infow("odd", "lonely")
	if !strings.Contains(buf.String(), "!BADKEY=lonely") {
		t.Fatalf("expected BADKEY marker, got %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	buf := capture(t)
	Init("info", "json")

	Warnw("cache write failed", "error", errors.New("boom"), "attempt", 2)

	var rec map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected a json line, got %q: %v", buf.String(), err)
	}
	if rec["level"] != "WARN" || rec["msg"] != "cache write failed" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["error"] != "boom" {
		t.Fatalf("errors should be rendered as strings: %v", rec)
	}
	if rec["attempt"] != float64(2) {
		t.Fatalf("unexpected attempt: %v", rec["attempt"])
	}
}

func TestFatalLevelLabel(t *testing.T) {
	buf := capture(t)
	Init("info", "json")

	// logf rather than Fatalf, which exits
	logf(slogFatal, "giving up after %d attempts", []interface{}{3})

	var rec map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected a json line, got %q: %v", buf.String(), err)
	}
	if rec["level"] != "FATAL" || rec["msg"] != "giving up after 3 attempts" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

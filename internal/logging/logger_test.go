package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name         string
		level        LogLevel
		debugVisible bool
		infoVisible  bool
	}{
		{"quiet suppresses info", LogLevelQuiet, false, false},
		{"normal shows info", LogLevelNormal, false, true},
		{"verbose shows debug", LogLevelVerbose, true, true},
		{"debug shows everything", LogLevelDebug, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewLogger(Config{Level: tt.level, Output: &buf})
			if err != nil {
				t.Fatalf("NewLogger() error: %v", err)
			}

			logger.Debug("debug message")
			logger.Info("info message")

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.debugVisible {
				t.Errorf("debug visible = %v, want %v", got, tt.debugVisible)
			}
			if got := strings.Contains(out, "info message"); got != tt.infoVisible {
				t.Errorf("info visible = %v, want %v", got, tt.infoVisible)
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: LogLevelNormal, Output: &buf, Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}

	logger.WithField("object_key", "a.txt").Info("Storage event received")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if entry["object_key"] != "a.txt" {
		t.Errorf("object_key = %v, want a.txt", entry["object_key"])
	}
	if entry["msg"] != "Storage event received" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestLogCopyOperation(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(Config{Level: LogLevelNormal, Output: &buf})

	logger.LogCopyOperation("src", "a.txt", "dst", 120*time.Millisecond, nil)
	if !strings.Contains(buf.String(), "Object copy completed") {
		t.Errorf("expected success log, got: %s", buf.String())
	}

	buf.Reset()
	logger.LogCopyOperation("src", "a.txt", "dst", 120*time.Millisecond, errors.New("access denied"))
	out := buf.String()
	if !strings.Contains(out, "Object copy failed") {
		t.Errorf("expected failure log, got: %s", out)
	}
	if !strings.Contains(out, "access denied") {
		t.Errorf("expected error detail in log, got: %s", out)
	}
}

func TestLogNotification(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(Config{Level: LogLevelNormal, Output: &buf})

	logger.LogNotification("topic1", "subject", "msg-123", nil)
	if !strings.Contains(buf.String(), "msg-123") {
		t.Errorf("expected message ID in log, got: %s", buf.String())
	}

	buf.Reset()
	logger.LogNotification("topic1", "subject", "", errors.New("topic unavailable"))
	if !strings.Contains(buf.String(), "Notification publish failed") {
		t.Errorf("expected failure log, got: %s", buf.String())
	}
}

func TestOperationIDContext(t *testing.T) {
	ctx := CreateContextWithOperationID(context.Background(), "op-42")
	if got := GetOperationIDFromContext(ctx); got != "op-42" {
		t.Errorf("GetOperationIDFromContext() = %q, want op-42", got)
	}
	if got := GetOperationIDFromContext(context.Background()); got != "" {
		t.Errorf("GetOperationIDFromContext() on empty context = %q, want empty", got)
	}
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(Config{Level: LogLevelDebug, Output: &buf})

	done := logger.LogOperationStart("object_copy", map[string]interface{}{"object_key": "a.txt"})
	done(nil)
	if !strings.Contains(buf.String(), "Operation completed") {
		t.Errorf("expected completion log, got: %s", buf.String())
	}

	buf.Reset()
	done = logger.LogOperationStart("object_copy", nil)
	done(errors.New("copy failed"))
	if !strings.Contains(buf.String(), "Operation failed") {
		t.Errorf("expected failure log, got: %s", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	logger := NewDefaultLogger()
	logger.SetLevel(LogLevelVerbose)
	if logger.GetLevel() != LogLevelVerbose {
		t.Errorf("GetLevel() = %q, want verbose", logger.GetLevel())
	}
	if !logger.IsLevelEnabled(LogLevelVerbose) {
		t.Error("verbose should be enabled after SetLevel")
	}
}

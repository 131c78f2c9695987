package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	t.Run("discards messages below minimum level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(LevelWarn, &buf)

		l.Debug("debug message", nil)
		l.Info("info message", nil)
		l.Warn("warn message", nil)
		l.Error("error message", nil, nil)

		got := buf.String()
		if strings.Contains(got, "debug message") || strings.Contains(got, "info message") {
			t.Errorf("expected debug/info to be discarded, got:\n%s", got)
		}
		if !strings.Contains(got, "warn message") || !strings.Contains(got, "error message") {
			t.Errorf("expected warn/error to be logged, got:\n%s", got)
		}
	})

	t.Run("debug level logs everything", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(LevelDebug, &buf)

		l.Debug("debug message", nil)

		if !strings.Contains(buf.String(), "debug message") {
			t.Error("expected debug message to be logged at debug level")
		}
	})
}

func TestLoggerOutputShape(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Error("Failed to fetch", Fields{"endpoint": "/formula.json"}, errors.New("connection refused"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}

	if entry.Level != "ERROR" {
		t.Errorf("expected level ERROR, got %q", entry.Level)
	}
	if entry.Message != "Failed to fetch" {
		t.Errorf("unexpected message: %q", entry.Message)
	}
	if entry.Fields["endpoint"] != "/formula.json" {
		t.Errorf("unexpected fields: %v", entry.Fields)
	}
	if entry.Error != "connection refused" {
		t.Errorf("unexpected error field: %q", entry.Error)
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("timestamp is not RFC3339: %v", err)
	}
}

func TestMetrics(t *testing.T) {
	t.Run("counters increment", func(t *testing.T) {
		m := NewMetrics()
		m.IncrCounter("commands.diff")
		m.IncrCounter("commands.diff")
		m.IncrCounter("commands.update")

		snapshot := m.GetSnapshot()
		counters := snapshot["counters"].(map[string]int64)

		if counters["commands.diff"] != 2 {
			t.Errorf("expected commands.diff = 2, got %d", counters["commands.diff"])
		}
		if counters["commands.update"] != 1 {
			t.Errorf("expected commands.update = 1, got %d", counters["commands.update"])
		}
	})

	t.Run("timings aggregate statistics", func(t *testing.T) {
		m := NewMetrics()
		m.RecordTiming("api.fetch_all", 100*time.Millisecond)
		m.RecordTiming("api.fetch_all", 300*time.Millisecond)

		snapshot := m.GetSnapshot()
		timings := snapshot["timings"].(map[string]map[string]interface{})

		stats, ok := timings["api.fetch_all"]
		if !ok {
			t.Fatal("expected api.fetch_all timing stats")
		}
		if stats["count"] != 2 {
			t.Errorf("expected count 2, got %v", stats["count"])
		}
		if stats["min"] != "100ms" {
			t.Errorf("expected min 100ms, got %v", stats["min"])
		}
		if stats["max"] != "300ms" {
			t.Errorf("expected max 300ms, got %v", stats["max"])
		}
		if stats["average"] != "200ms" {
			t.Errorf("expected average 200ms, got %v", stats["average"])
		}
	})
}

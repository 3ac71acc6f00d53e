package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "info", Format: "json"})

	logger.Info("test message", slog.String("entry_id", "e1"))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("JSON handler should produce valid JSON: %v", err)
	}
	if m["msg"] != "test message" {
		t.Errorf("expected msg 'test message', got %v", m["msg"])
	}
	if m["entry_id"] != "e1" {
		t.Errorf("expected entry_id attribute, got %v", m["entry_id"])
	}
	if _, ok := m["source"]; ok {
		t.Error("json format should not include source information")
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "debug", Format: "text"})

	logger.Debug("source test")

	output := buf.String()
	if !strings.Contains(output, "source=") {
		t.Error("text format should include source information")
	}
	if !strings.Contains(output, "level=DEBUG") {
		t.Errorf("debug level should be enabled, got %q", output)
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(output, "shown") {
		t.Error("warn record should be written at warn level")
	}
}

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})

	if slog.Default() != logger {
		t.Error("NewLogger should set the default logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

// captureLogOutputWithInit captures output by reinitializing the logger
// against a buffer. This exercises the InitLogger handler options.
func captureLogOutputWithInit(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	SetOutput(&buf)
	InitLogger(level, format)

	f()

	SetOutput(os.Stderr)
	InitLogger(LevelWarn, FormatText)
	return buf.String()
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{name: "Debug level JSON format", level: LevelDebug, format: FormatJSON},
		{name: "Info level Text format", level: LevelInfo, format: FormatText},
		{name: "Warn level Text format", level: LevelWarn, format: FormatText},
		{name: "Error level JSON format", level: LevelError, format: FormatJSON},
		{name: "Default level (invalid value)", level: Level(999), format: FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if defaultLogger == nil {
				t.Error("Expected logger to be initialized, got nil")
			}
		})
	}
	InitLogger(LevelWarn, FormatText)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelWarn},
		{"", LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("json should map to FormatJSON")
	}
	if ParseFormat("JSON") != FormatJSON {
		t.Error("JSON should map to FormatJSON")
	}
	if ParseFormat("text") != FormatText {
		t.Error("text should map to FormatText")
	}
	if ParseFormat("") != FormatText {
		t.Error("empty should map to FormatText")
	}
}

func TestLevelFiltering(t *testing.T) {
	output := captureLogOutputWithInit(LevelWarn, FormatText, func() {
		Info("hidden message")
		Warn("visible message")
	})
	if strings.Contains(output, "hidden message") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(output, "visible message") {
		t.Error("warn record should be written at warn level")
	}
}

func TestJSONTimestampFormat(t *testing.T) {
	output := captureLogOutputWithInit(LevelDebug, FormatJSON, func() {
		Debug("stamp")
	})
	if !strings.Contains(output, `"time":"`) {
		t.Fatalf("expected a time attribute, got %s", output)
	}
	if !strings.Contains(output, `"msg":"stamp"`) {
		t.Errorf("expected msg attribute, got %s", output)
	}
}

func TestLoggingFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		want string
	}{
		{name: "Debug", fn: func() { Debug("debug message", "key", "value") }, want: "debug message"},
		{name: "Info", fn: func() { Info("info message", "key", "value") }, want: "info message"},
		{name: "Warn", fn: func() { Warn("warning message", "key", "value") }, want: "warning message"},
		{name: "Error", fn: func() { Error("error message", "key", "value") }, want: "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(tt.fn)
			if !strings.Contains(output, tt.want) {
				t.Errorf("Expected output to contain %q, got %s", tt.want, output)
			}
		})
	}
}

func TestDictionaryLoaded(t *testing.T) {
	output := captureLogOutput(func() {
		DictionaryLoaded("sg_CF", 1234, "dict", "files", 2)
	})
	for _, want := range []string{"dictionary_loaded", "sg_CF", "1234", `"files":2`} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %s", want, output)
		}
	}
}

func TestCacheEvent(t *testing.T) {
	output := captureLogOutput(func() {
		CacheEvent("hit", "en_US", "digest", "abc")
	})
	if !strings.Contains(output, "cache_event") || !strings.Contains(output, "hit") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestToolRunAndFailure(t *testing.T) {
	output := captureLogOutput(func() {
		ToolRun("sfm harmonize", []string{"SAB.SFM", "EAB.SFM"})
		ToolFailure("sfm harmonize", errors.New("boom"))
	})
	for _, want := range []string{"tool_run", "SAB.SFM", "tool_failure", "boom"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %s", want, output)
		}
	}
}

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "booking"})

	log.Info("hello", "key", "value")
	log.Debug("hidden")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "booking" {
		t.Errorf("expected service attribute, got %v", entry[SERVICE])
	}
	if entry["key"] != "value" {
		t.Errorf("expected key attribute, got %v", entry["key"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for input, expected := range tests {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, expected)
		}
	}

	if IsValidLevel("verbose") {
		t.Errorf("verbose is not a valid level")
	}
	if !IsValidLevel("Warn") {
		t.Errorf("Warn should be valid")
	}
}

func TestFromContext(t *testing.T) {
	fallback := Discard()
	if got := FromContext(context.Background(), fallback); got != fallback {
		t.Errorf("expected fallback logger")
	}

	scoped := fallback.With("request_id", "abc")
	ctx := WithContext(context.Background(), scoped)
	if got := FromContext(ctx, fallback); got != scoped {
		t.Errorf("expected scoped logger from context")
	}
}

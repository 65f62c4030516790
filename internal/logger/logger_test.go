package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Adda-Baaj/keyfetch/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestObjHelpersWriteJSONAndRespectLevel(t *testing.T) {
	t.Cleanup(func() { S = nil })

	var buf bytes.Buffer
	initWithSink(&config.Config{AppName: "keyfetch", Env: "test", LogLevel: "warn"}, &buf)

	InfoObj("dropped", "k", 1)
	WarnObj("attempt failed", "attempt", map[string]any{"n": 1})
	_ = Close()

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["msg"] != "attempt failed" || entry["app"] != "keyfetch" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts field in %v", entry)
	}
}

func TestHelpersNoopBeforeInit(t *testing.T) {
	S = nil
	InfoObj("ignored", "k", "v")
	if err := Close(); err != nil {
		t.Fatalf("Close without init: %v", err)
	}
}

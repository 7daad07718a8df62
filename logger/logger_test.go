package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func jsonLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return newLogger(&Config{Level: level, Format: "json"}, "mockserver", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return m
}

func TestJSONOutput(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.Info("request", Fields("method", "GET", "status", 200))

	m := decodeLine(t, buf)
	if m["service"] != "mockserver" || m["message"] != "request" || m["level"] != "info" {
		t.Errorf("line = %v", m)
	}
	if m["method"] != "GET" || m["status"] != float64(200) {
		t.Errorf("fields = %v", m)
	}
}

func TestLevelFilter(t *testing.T) {
	l, buf := jsonLogger(t, "warn")
	l.Info("hidden")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn line missing: %q", buf.String())
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	l, buf := jsonLogger(t, "loud")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWithContextAddsSpan(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x0a, 0x0b},
		SpanID:     trace.SpanID{0x01},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.WithContext(ctx).Info("fetch call")
	m := decodeLine(t, buf)
	if m[FieldTraceID] != sc.TraceID().String() || m[FieldSpanID] != sc.SpanID().String() {
		t.Errorf("line = %v", m)
	}
}

func TestWithContextNoSpan(t *testing.T) {
	l, _ := jsonLogger(t, "info")
	if l.WithContext(context.Background()) != l {
		t.Error("expected the same logger without an active span")
	}
}

func TestDerivedLoggers(t *testing.T) {
	l, buf := jsonLogger(t, "info")
	l.WithComponent("server").
		WithFields(map[string]interface{}{"port": 3000}).
		WithError(errors.New("bind failed")).
		Error("start")

	m := decodeLine(t, buf)
	if m[FieldComponent] != "server" || m["port"] != float64(3000) || m[FieldError] != "bind failed" {
		t.Errorf("line = %v", m)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&Config{Level: "info", Format: "console", NoColor: true}, "mockserver", &buf)
	l.Info("hello mock server", Fields("port", 3000))

	out := buf.String()
	for _, want := range []string{"[MOC][INF]", "hello mock server", "port:3000"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output %q missing %q", out, want)
		}
	}
}

func TestInitAndGet(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	Init(&Config{ServiceName: "fetchkit", Level: "error"})
	if GetGlobalLogger().service != "fetchkit" {
		t.Errorf("global service = %q", GetGlobalLogger().service)
	}
	if Get("fetch") == nil {
		t.Fatal("Get returned nil")
	}

	l, _ := jsonLogger(t, "info")
	Register("custom", l)
	if Get("custom") != l {
		t.Error("Get should return the registered logger")
	}
}

func TestInitDoesNotModifyConfig(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	cfg := Config{Level: "warn"}
	Init(&cfg)
	if cfg.Format != "" || cfg.Output != "" {
		t.Errorf("config modified: %+v", cfg)
	}
}

func TestFields(t *testing.T) {
	got := Fields("a", 1, 2, "skipped", "b", true, "dangling")
	if len(got) != 2 || got["a"] != 1 || got["b"] != true {
		t.Errorf("Fields = %v", got)
	}
}

func TestMergeHelpers(t *testing.T) {
	f := MergeWithError(nil, errors.New("refused"))
	f = MergeWithDuration(f, 1500*time.Millisecond)
	if f[FieldError] != "refused" || f[FieldDuration] != int64(1500) {
		t.Errorf("fields = %v", f)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" || !cfg.Timestamp {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	tests := []Config{
		{Level: "verbose", Format: "json"},
		{Level: "info", Format: "xml"},
	}
	for _, c := range tests {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%+v) should fail", c)
		}
	}
}

package mean

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Fatal("default logger should be disabled")
	}
}

func TestSetLoggerReceivesSelection(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	_ = selectFor(genericFeatures)

	out := buf.String()
	if !strings.Contains(out, "chunked fallback") {
		t.Fatalf("missing fallback record in log output: %q", out)
	}
	if !strings.Contains(out, "force_generic=true") {
		t.Fatalf("missing force_generic attribute in log output: %q", out)
	}
}

func TestSetLoggerNilRestoresNop(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)

	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Fatal("SetLogger(nil) should restore the silent logger")
	}
}

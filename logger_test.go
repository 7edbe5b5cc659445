package fontatlas

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	testFont(t, 16, 0)

	if !strings.Contains(buf.String(), "built atlas") {
		t.Errorf("expected build diagnostics in log output, got %q", buf.String())
	}
}

func TestSetLogger_NilRestoresSilence(t *testing.T) {
	SetLogger(nil)
	if logger() == nil {
		t.Fatal("logger() returned nil")
	}
	// The nop handler reports disabled at every level.
	if logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("nil logger should disable all output")
	}
}

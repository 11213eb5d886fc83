package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zapcore.WarnLevel)

	log.Debug("hidden", zap.String("stage", "generate"))
	log.Warn("shown", zap.String("stage", "execute"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"stage": "execute"`) {
		t.Errorf("warn line missing or malformed: %q", out)
	}
	if !strings.Contains(out, "askcourses") {
		t.Errorf("logger name missing: %q", out)
	}
}

func TestNewNilWriter(t *testing.T) {
	log := New(nil, zapcore.DebugLevel)
	log.Info("discarded")
}

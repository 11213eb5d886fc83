package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w at level and above. Stdout is
// reserved for the result table, so callers pass stderr.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	if w == nil {
		w = io.Discard
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("askcourses")
}

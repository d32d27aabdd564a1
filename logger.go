package vellobench

import (
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/vellobench/internal/logging"
)

// SetLogger configures the logger for vellobench and the libraries it
// drives. By default nothing is logged. Pass nil to restore silence.
//
// The logger is also installed in gg and wgpu, so renderer and GPU
// diagnostics land in the same stream.
//
// Log levels used by vellobench:
//   - [slog.LevelDebug]: per-sample readback, dropped profiler frames
//   - [slog.LevelInfo]: adapter selection, scenes being sampled
//   - [slog.LevelWarn]: fallback to host-clock timing
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	l = logging.Set(l)
	gg.SetLogger(l)
	wgpu.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.L()
}

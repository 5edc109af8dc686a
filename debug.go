package kinetic

import (
	"context"
	"log/slog"
)

// debugStats holds per-tick engine metrics. Only populated when
// Engine.Debug is true.
type debugStats struct {
	recordsAdvanced  int
	recordsFinished  int
	elementsFlushed  int
	callbacksFired   int
	suspendedResumed int
}

// diag is the optional diagnostics sink shared by the long-lived runtime
// objects. A nil logger discards everything.
type diag struct {
	logger *slog.Logger
}

// SetLogger installs l for diagnostics. nil disables output.
func (d *diag) SetLogger(l *slog.Logger) { d.logger = l }

func (d *diag) logWarn(msg string, args ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Warn("kinetic: "+msg, args...)
}

func (d *diag) logError(msg string, args ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Error("kinetic: "+msg, args...)
}

func (d *diag) debugEnabled() bool {
	return d.logger != nil && d.logger.Enabled(context.Background(), slog.LevelDebug)
}

// debugLog prints per-tick stats at debug level.
func (e *Engine) debugLog(stats debugStats) {
	if !e.Debug || !e.debugEnabled() {
		return
	}
	e.logger.Debug("kinetic: tick",
		"advanced", stats.recordsAdvanced,
		"finished", stats.recordsFinished,
		"flushed", stats.elementsFlushed,
		"callbacks", stats.callbacksFired,
		"resumed", stats.suspendedResumed,
	)
}

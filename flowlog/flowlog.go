// Package flowlog is the engine's structured logging surface: plain
// log/slog with two custom levels for construction-time and lifecycle
// events, rather than a second logging dependency.
package flowlog

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/rs/xid"
)

const (
	// LevelTopology logs graph-construction events: connections,
	// differentiation, rate resolution. Between slog's Debug and Info
	// levels; only logged while the debug toggle is on.
	LevelTopology slog.Level = slog.LevelDebug + 1
	// LevelLifecycle logs driver start/stop/block-exit transitions.
	LevelLifecycle slog.Level = slog.LevelDebug + 2
)

var debugEnabled atomic.Bool

// SetDebug toggles whether Topology/Lifecycle events are emitted. Turning
// it on also lowers the default slog logger's level to LevelTopology, which
// otherwise drops every record below Info.
func SetDebug(on bool) {
	debugEnabled.Store(on)
	if on {
		slog.SetLogLoggerLevel(LevelTopology)
	}
}

// Debug reports the current debug toggle.
func Debug() bool { return debugEnabled.Load() }

// NewCorrelationID returns a short unique id for tagging one connection or
// one driver run across several log lines.
func NewCorrelationID() string { return xid.New().String() }

// Topology logs a graph-construction event when the debug toggle is on.
func Topology(msg string, args ...any) {
	if !debugEnabled.Load() {
		return
	}
	slog.Log(context.Background(), LevelTopology, msg, args...)
}

// Lifecycle logs a driver/block lifecycle transition when the debug toggle
// is on.
func Lifecycle(msg string, args ...any) {
	if !debugEnabled.Load() {
		return
	}
	slog.Log(context.Background(), LevelLifecycle, msg, args...)
}

// Error always logs, regardless of the debug toggle: a failure is never
// merely a debug concern.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

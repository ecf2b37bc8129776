package build

import (
	"time"

	"go.uber.org/zap"
)

// Screen shows short-lived messages to the player.
type Screen interface {
	Add(text string, ttl time.Duration)
}

// LogDiagnostics writes controller feedback to the log and, when a screen
// is attached, mirrors it there for ttl.
type LogDiagnostics struct {
	log    *zap.Logger
	screen Screen
	ttl    time.Duration
}

func NewLogDiagnostics(log *zap.Logger, screen Screen, ttl time.Duration) *LogDiagnostics {
	return &LogDiagnostics{log: log, screen: screen, ttl: ttl}
}

func (d *LogDiagnostics) Notice(msg string) {
	d.log.Info(msg)
	if d.screen != nil {
		d.screen.Add(msg, d.ttl)
	}
}

func (d *LogDiagnostics) Problem(err error) {
	d.log.Warn("build request refused", zap.Error(err))
	if d.screen != nil {
		d.screen.Add(err.Error(), d.ttl)
	}
}

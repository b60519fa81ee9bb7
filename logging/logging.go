// Package logging provides a small structured-logging wrapper for code
// that uses the dynamics core (never on the per-iteration hot path). It is
// intentionally thin, and no other package of this module imports it:
// algorithms never log, only the callers that construct mechanisms/states
// and report setup-time problems.
package logging

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Level is a logging severity, ordered DEBUG < INFO < WARN < ERROR.
type Level int

const (
	// DEBUG is for verbose, developer-facing detail.
	DEBUG Level = iota
	// INFO is for normal operational messages.
	INFO
	// WARN is for recoverable anomalies.
	WARN
	// ERROR is for failures that abort the current operation.
	ERROR
)

// String returns the canonical string form of the level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// LevelFromString parses the canonical and a few common alias spellings.
func LevelFromString(s string) (Level, error) {
	switch s {
	case "Debug", "debug":
		return DEBUG, nil
	case "Info", "info":
		return INFO, nil
	case "Warn", "warn", "Warning", "warning":
		return WARN, nil
	case "Error", "error":
		return ERROR, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger is the logging surface this package provides. It is satisfied
// by *zapLogger, which both NewLogger and NewTestLogger return; the
// package has no no-op implementation.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	// Sublogger returns a child logger tagged with name, for attributing
	// messages to the mechanism/state/algorithm that produced them.
	Sublogger(name string) Logger
}

type zapLogger struct {
	z *zap.SugaredLogger
}

// NewLogger returns a production logger named name.
func NewLogger(name string) Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return &zapLogger{z: z.Sugar().Named(name)}
}

// NewTestLogger returns a logger that writes to the test's own output,
// matching the teacher's logging.NewTestLogger(t) convention used
// throughout its test suites.
func NewTestLogger(t *testing.T) Logger {
	return &zapLogger{z: zaptest.NewLogger(t).Sugar()}
}

func (l *zapLogger) Debugf(template string, args ...interface{}) { l.z.Debugf(template, args...) }
func (l *zapLogger) Infof(template string, args ...interface{})  { l.z.Infof(template, args...) }
func (l *zapLogger) Warnf(template string, args ...interface{})  { l.z.Warnf(template, args...) }
func (l *zapLogger) Errorf(template string, args ...interface{}) { l.z.Errorf(template, args...) }

func (l *zapLogger) Sublogger(name string) Logger {
	return &zapLogger{z: l.z.Named(name)}
}

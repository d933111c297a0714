package cryptopals

import (
	"fmt"
	"sync/atomic"

	"github.com/go-i2p/logger"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

var (
	activeFilter atomic.Pointer[LogFilter]

	// runID tags every entry of one process run.
	runID = ulid.Make().String()

	log      = NewLogger(ModuleName)
	fetchLog = NewLogger(ModuleName + "/fetch")
	xorLog   = NewLogger(ModuleName + "/xor")
	modeLog  = NewLogger(ModuleName + "/modes")
	mtLog    = NewLogger(ModuleName + "/mt19937")
)

// RunID returns the identifier attached to this process's log entries.
func RunID() string {
	return runID
}

// NewLogger returns a logger for module, a "/" separated path below
// ModuleName such as "cryptopals/set1".
func NewLogger(module string) *Logger {
	return &Logger{module: module}
}

// Module returns the logger's module name.
func (l *Logger) Module() string {
	return l.module
}

// Sub returns a logger for a child module.
func (l *Logger) Sub(name string) *Logger {
	return &Logger{module: l.module + "/" + name, callbacks: l.callbacks}
}

// WithCallbacks returns a copy of the logger that hands every emitted line
// to cb instead of the go-i2p logger.
func (l *Logger) WithCallbacks(cb *LoggerCallbacks) *Logger {
	return &Logger{module: l.module, callbacks: cb}
}

// Enabled reports whether level is emitted for this logger's module.
func (l *Logger) Enabled(level logrus.Level) bool {
	return activeFilter.Load().Enabled(l.module, level)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, format, args...)
}

func (l *Logger) log(level logrus.Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	message := format
	if len(args) != 0 {
		message = fmt.Sprintf(format, args...)
	}
	if l.callbacks != nil && l.callbacks.OnLog != nil {
		l.callbacks.OnLog(l, level, message)
		return
	}

	entry := logger.GetGoI2PLogger().
		WithField("module", l.module).
		WithField("run", runID)
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		entry.Debug(message)
	case logrus.InfoLevel:
		entry.Info(message)
	case logrus.WarnLevel:
		entry.Warn(message)
	default:
		entry.Error(message)
	}
}

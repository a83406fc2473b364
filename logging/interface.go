package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/runningwild/glop/glog"
)

type stdLogInterceptor interface {
	Printf(format string, v ...interface{})
}

type Logger interface {
	glog.Logger
	stdLogInterceptor
}

type roomLogger struct {
	glog.Logger
}

func (log *roomLogger) Printf(msg string, args ...interface{}) {
	log.Logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

var _ Logger = (*roomLogger)(nil)

var (
	debugLogger = newRoomLogger(slog.LevelDebug)
	infoLogger  = newRoomLogger(slog.LevelInfo)
	warnLogger  = newRoomLogger(slog.LevelWarn)
	errorLogger = newRoomLogger(slog.LevelError)
)

func newRoomLogger(lvl slog.Level) *roomLogger {
	return &roomLogger{
		Logger: glog.New(&glog.Opts{
			Level: lvl,
		}),
	}
}

func DefaultLogger() Logger {
	return InfoLogger()
}

func DebugLogger() Logger {
	return debugLogger
}

func InfoLogger() Logger {
	return infoLogger
}

func WarnLogger() Logger {
	return warnLogger
}

func ErrorLogger() Logger {
	return errorLogger
}

func Log(msg string, args ...interface{}) {
	DefaultLogger().Info(msg, args...)
}

// Trace messages go through the default logger so that SetLogLevel can turn
// them on without touching the other loggers.
func Trace(msg string, args ...interface{}) {
	DefaultLogger().Log(context.Background(), glog.LevelTrace, msg, args...)
}

func Debug(msg string, args ...interface{}) {
	DebugLogger().Debug(msg, args...)
}

func Info(msg string, args ...interface{}) {
	InfoLogger().Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	WarnLogger().Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	ErrorLogger().Error(msg, args...)
}

// Sends the output of every logger to newOut. Loggers fetched before the
// call keep writing where they used to. Returns a function that undoes the
// redirect.
func Redirect(newOut io.Writer) func() {
	loggers := []**roomLogger{&debugLogger, &infoLogger, &warnLogger, &errorLogger}
	saved := make([]*roomLogger, len(loggers))
	for i, lg := range loggers {
		saved[i] = *lg
		*lg = &roomLogger{
			Logger: glog.WithRedirect(saved[i], newOut),
		}
	}
	return func() {
		for i, lg := range loggers {
			*lg = saved[i]
		}
	}
}

// Tells the 'Default Logger' to change its verbosity. Returns a function that
// restores the previous logger.
func SetLogLevel(lvl slog.Level) func() {
	old := infoLogger.Logger
	infoLogger.Logger = glog.Relevel(old, lvl)
	return func() {
		infoLogger.Logger = old
	}
}

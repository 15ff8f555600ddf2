// Package logger provides leveled logging for the blogd API server on top of
// op/go-logging, with a console backend configured at startup.
package logger

import (
	"os"

	"github.com/op/go-logging"
)

const timeFormat = "2006/01/02 15:04:05"

// The default logger is usable before InitLogger runs; InitLogger narrows
// the backend to the configured level and format.
var logger = logging.MustGetLogger("blogd")

// InitLogger configures the console backend with the given level.
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger("blogd")

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:` + timeFormat + `} %{level} - %{message}`)
	formatted := logging.NewBackendFormatter(backend, format)

	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "blogd")

	newLogger.SetBackend(leveled)
	logger = newLogger
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Notice(args ...any) {
	logger.Notice(args...)
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

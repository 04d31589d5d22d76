package logger

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
)

var (
	// Log is the global logger instance. It is usable before Initialize is
	// called so packages under test can log without setup.
	Log = logrus.New()
)

// Initialize sets up the logger with proper formatting and the given level.
// An unknown level falls back to info and is reported as a warning.
func Initialize(level string) {
	InitializeWithOutput(os.Stdout, level)
}

// InitializeWithOutput is Initialize with an explicit destination.
func InitializeWithOutput(out io.Writer, level string) {
	Log = logrus.New()
	Log.SetOutput(out)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		DisableColors:    termenv.EnvColorProfile() == termenv.Ascii,
		DisableTimestamp: false,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.SetLevel(logrus.InfoLevel)
		Log.WithField("level", level).Warn("Unknown log level, using info")
		return
	}
	Log.SetLevel(lvl)
}

// Fields shorthand for logrus.Fields
type Fields logrus.Fields

// Error logs a message at level Error
func Error(msg string, fields Fields) {
	if fields == nil {
		Log.Error(msg)
	} else {
		Log.WithFields(logrus.Fields(fields)).Error(msg)
	}
}

// Info logs a message at level Info
func Info(msg string, fields Fields) {
	if fields == nil {
		Log.Info(msg)
	} else {
		Log.WithFields(logrus.Fields(fields)).Info(msg)
	}
}

// Warn logs a message at level Warn
func Warn(msg string, fields Fields) {
	if fields == nil {
		Log.Warn(msg)
	} else {
		Log.WithFields(logrus.Fields(fields)).Warn(msg)
	}
}

// Debug logs a message at level Debug
func Debug(msg string, fields Fields) {
	if fields == nil {
		Log.Debug(msg)
	} else {
		Log.WithFields(logrus.Fields(fields)).Debug(msg)
	}
}

// Fatal logs a message at level Fatal then the process will exit with status set to 1
func Fatal(msg string, fields Fields) {
	if fields == nil {
		Log.Fatal(msg)
	} else {
		Log.WithFields(logrus.Fields(fields)).Fatal(msg)
	}
}

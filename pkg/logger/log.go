package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	prefixLen = 15
)

/* Public */

// Init configures the global logrus logger. An empty logFilePath disables the rotating file hook.
func Init(logFilePath string, verbosity int) error {
	// set logging level
	var logLevel logrus.Level
	switch {
	case verbosity <= 0:
		logLevel = logrus.InfoLevel
	case verbosity == 1:
		logLevel = logrus.DebugLevel
	default:
		logLevel = logrus.TraceLevel
	}

	// set global log level
	logrus.SetLevel(logLevel)

	// set console output, stdout carries command results
	logrus.SetOutput(colorable.NewColorableStderr())
	logrus.SetFormatter(newConsoleFormatter(isTerminal(os.Stderr)))

	if logFilePath == "" {
		return nil
	}

	// add rotating file hook
	rotateFileHook, err := NewRotateFileHook(RotateFileConfig{
		Filename:   logFilePath,
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     90,
		Level:      logLevel,
		Formatter: &prefixed.TextFormatter{
			DisableColors:   true,
			ForceFormatting: true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			SpacePadding:    prefixLen,
		},
	})
	if err != nil {
		return fmt.Errorf("initialise rotating file hook: %w", err)
	}

	logrus.AddHook(rotateFileHook)
	return nil
}

// GetLogger returns an entry tagged with prefix.
func GetLogger(prefix string) *logrus.Entry {
	if len(prefix) > prefixLen {
		prefixLen = len(prefix)
	}

	return logrus.WithFields(logrus.Fields{"prefix": prefix})
}

// Discard returns an entry writing nowhere, used when a library caller has not supplied a logger.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

/* Private */

func newConsoleFormatter(colors bool) *prefixed.TextFormatter {
	return &prefixed.TextFormatter{
		ForceColors:     colors,
		DisableColors:   !colors,
		ForceFormatting: true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		SpacePadding:    prefixLen,
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

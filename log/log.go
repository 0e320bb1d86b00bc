// Package log provides loggers for soundgraph commands and components.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

var debug bool

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv("SOUNDGRAPH_DEBUG"))
	if err != nil {
		debug = false
	}
}

// SetDebug overrides the debug level taken from environment.
func SetDebug(enabled bool) {
	debug = enabled
}

// GetLogger returns a new logger instance.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// GetLoggerTo returns a new text logger writing to w.
func GetLoggerTo(w io.Writer) *logrus.Logger {
	l := GetLogger()
	l.Out = w
	l.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	return l
}

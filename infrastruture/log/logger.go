// Package logger provides named, colored component loggers backed by logrus.
package logger

import (
	"errors"
	"fmt"
	"io"

	"github.com/beka-birhanu/shifting-maze/service/i"
	"github.com/sirupsen/logrus"
)

var _ i.Logger = &Logger{}

// colorReset ends the color of the component prefix.
const colorReset = "\033[0m"

// ErrEmptyName is returned when a logger is created without a component name.
var ErrEmptyName = errors.New("logger name is required")

// Logger writes leveled messages prefixed with a colored component name.
type Logger struct {
	entry  *logrus.Entry
	prefix string
}

// New creates a logger for the named component writing to w.
func New(name, color string, w io.Writer) (*Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	base := logrus.New()
	base.Out = w
	base.Level = logrus.InfoLevel
	base.Formatter = &logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	}

	return &Logger{
		entry:  logrus.NewEntry(base).WithField("component", name),
		prefix: fmt.Sprintf("%s[%s]%s ", color, name, colorReset),
	}, nil
}

// Info logs a message at info level.
func (l *Logger) Info(msg string) {
	l.entry.Info(l.prefix + msg)
}

// Warning logs a message at warning level.
func (l *Logger) Warning(msg string) {
	l.entry.Warn(l.prefix + msg)
}

// Error logs a message at error level.
func (l *Logger) Error(msg string) {
	l.entry.Error(l.prefix + msg)
}

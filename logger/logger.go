// Package logger provides named, colored component loggers.
//
// Every line looks like:
//
//	2025-02-08T11:01:49Z [APP] [INFO] Router initialized size=30
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	levelColorError = "\033[31m"
	levelColorWarn  = "\033[33m"
	levelColorInfo  = "\033[32m"
	levelColorDebug = "\033[34m"
	colorReset      = "\033[0m"
)

var ErrEmptyName = errors.New("logger name must not be empty")

// Fields are structured key/value pairs appended to a log line.
type Fields map[string]any

// Logger writes leveled messages tagged with a component name.
type Logger struct {
	log *logrus.Logger
}

// New creates a Logger that tags every line with name, printed in color.
// An empty color disables coloring.
func New(name, color string, out io.Writer) (*Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&formatter{name: name, color: color})

	return &Logger{log: l}, nil
}

// SetLevel changes the minimum level (debug, info, warning, error).
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.log.SetLevel(lvl)
	return nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.entry(fields).Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, fields ...Fields) {
	l.entry(fields).Info(msg)
}

// Warning logs a warning.
func (l *Logger) Warning(msg string, fields ...Fields) {
	l.entry(fields).Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(msg string, fields ...Fields) {
	l.entry(fields).Error(msg)
}

func (l *Logger) entry(fields []Fields) *logrus.Entry {
	merged := logrus.Fields{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	return l.log.WithFields(merged)
}

// formatter renders "<time> [NAME] [LEVEL] message k=v ...".
type formatter struct {
	name  string
	color string
}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString(e.Time.UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	f.tag(&b, f.color, f.name)
	b.WriteByte(' ')
	f.tag(&b, levelColor(e.Level), levelName(e.Level))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *formatter) tag(b *bytes.Buffer, color, text string) {
	if f.color == "" {
		fmt.Fprintf(b, "[%s]", text)
		return
	}
	fmt.Fprintf(b, "%s[%s]%s", color, text, colorReset)
}

func levelName(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return "WARNING"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "ERROR"
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG"
	default:
		return "INFO"
	}
}

func levelColor(l logrus.Level) string {
	switch l {
	case logrus.WarnLevel:
		return levelColorWarn
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return levelColorError
	case logrus.DebugLevel, logrus.TraceLevel:
		return levelColorDebug
	default:
		return levelColorInfo
	}
}

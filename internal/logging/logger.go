// Package logging provides the leveled logger used by the codec and the CLI.
package logging

import (
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a logging verbosity level.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelInfo
	LevelVerbose
	LevelDebug
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelSilent:
		return "silent"
	case LevelError:
		return "error"
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelDebug:
		return "debug"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Logger writes leveled messages. Errors go to the error writer; other
// messages reach the output writer only at verbose level or above. Every
// message that passes the level also goes to the log file when one is open.
//
// A nil *Logger is valid and discards everything.
type Logger struct {
	mu      sync.Mutex
	level   Level
	file    *os.File
	fileLog *log.Logger
	out     *log.Logger
	errOut  *log.Logger
}

// New creates a logger writing to out and errOut.
func New(level Level, out, errOut io.Writer) *Logger {
	return &Logger{
		level:  level,
		out:    log.New(out, "", 0),
		errOut: log.New(errOut, "", 0),
	}
}

// NewLogger creates a logger writing to stdout and stderr, and to logFile
// when it is not empty.
func NewLogger(level Level, logFile string) (*Logger, error) {
	l := New(level, os.Stdout, os.Stderr)
	if logFile != "" {
		file, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		l.file = file
		l.fileLog = log.New(file, "", log.LstdFlags)
	}

	return l, nil
}

// Discard returns a silent logger.
func Discard() *Logger {
	return New(LevelSilent, io.Discard, io.Discard)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = nil

		return err
	}

	return nil
}

// Error logs an error message.
func (l *Logger) Error(format string, v ...any) {
	l.logf(LevelError, "ERROR: ", format, v...)
}

// Info logs an info message.
func (l *Logger) Info(format string, v ...any) {
	l.logf(LevelInfo, "INFO: ", format, v...)
}

// Verbose logs a verbose message.
func (l *Logger) Verbose(format string, v ...any) {
	l.logf(LevelVerbose, "VERBOSE: ", format, v...)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, v ...any) {
	l.logf(LevelDebug, "DEBUG: ", format, v...)
}

// Hex logs data as space separated hex bytes at debug level.
func (l *Logger) Hex(label string, data []byte) {
	if !l.Enabled(LevelDebug) {
		return
	}

	l.Debug("%s: %s", label, FormatHex(data))
}

// FormatHex formats data as space separated hex bytes.
func FormatHex(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 3)
	for i := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(hex.EncodeToString(data[i : i+1]))
	}

	return sb.String()
}

// Enabled reports whether messages at level are logged.
func (l *Logger) Enabled(level Level) bool {
	return l.Level() >= level && level > LevelSilent
}

// SetLevel sets the logging level.
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelSilent
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.level
}

func (l *Logger) logf(level Level, prefix, format string, v ...any) {
	if !l.Enabled(level) {
		return
	}

	msg := prefix + fmt.Sprintf(format, v...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fileLog != nil {
		l.fileLog.Println(msg)
	}
	switch {
	case level == LevelError:
		l.errOut.Println(msg)
	case l.level >= LevelVerbose:
		l.out.Println(msg)
	}
}

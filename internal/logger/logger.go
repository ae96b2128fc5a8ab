// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger wraps charmbracelet/log with the conversion events
// the tool reports.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger with the given output.
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard)
}

// ConversionStarted logs the start of a conversion run.
func (l *Logger) ConversionStarted(source, target string) {
	l.Info("conversion started",
		"source", source,
		"target", target)
}

// ConversionCompleted logs a finished conversion run.
func (l *Logger) ConversionCompleted(target string, duration time.Duration) {
	l.Info("conversion completed",
		"target", target,
		"duration", duration.Round(time.Millisecond))
}

// BackupWritten logs that the previous target was moved aside.
func (l *Logger) BackupWritten(path string) {
	l.Debug("backup written", "path", path)
}

// BackupRestored logs that a failed write put the backup back.
func (l *Logger) BackupRestored(path string) {
	l.Warn("backup restored after failed write", "path", path)
}

// DocumentLoaded logs source document statistics.
func (l *Logger) DocumentLoaded(source string, chapters, sections int) {
	l.Debug("document loaded",
		"source", source,
		"chapters", chapters,
		"sections", sections)
}

// Copyright 2015 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Changes from original
// - No more use of kingpin
// - Extracted output setting from NewLogger
// - Every event carries its file, line and function
// - Only the levels and helpers the stream daemon uses

/*
Example --
Base().Info("stream 3 opened")

log := NewLogger()
log.With("stream", 3).Debug("refuelled")
*/

package logging

import (
	"io"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level mirrors logrus levels, most severe first.
type Level uint32

var baseLogger Logger

const (
	Panic Level = iota
	Fatal
	Error
	Warn
	Info
	Debug
)

const stackPrefix = "[Stack]"

var once sync.Once

// Init sets up the base logger: stderr, warnings and above.
func Init() {
	once.Do(func() {
		baseLogger = NewLogger()
		baseLogger.SetLevel(Warn)
	})
}

func init() {
	Init()
}

// Fields maps logrus fields
type Fields = logrus.Fields

// Logger is the interface for loggers.
type Logger interface {
	Debug(...interface{})
	Debugf(string, ...interface{})

	Info(...interface{})
	Infoln(...interface{})
	Infof(string, ...interface{})

	Warn(...interface{})
	Warnf(string, ...interface{})

	// Error and the levels above it also log the goroutine stack.
	Error(...interface{})
	Errorf(string, ...interface{})

	// Fatal runs the handlers added with RegisterExitHandler, then exits.
	Fatal(...interface{})

	Panic(...interface{})

	With(key string, value interface{}) Logger
	WithFields(Fields) Logger

	SetLevel(Level)
	IsLevelEnabled(level Level) bool

	SetOutput(io.Writer)
	SetJSONFormatter()

	// source adds file, line and function fields to the event
	source() *logrus.Entry
}

type logger struct {
	entry *logrus.Entry
}

func (l logger) With(key string, value interface{}) Logger {
	return logger{l.entry.WithField(key, value)}
}

func (l logger) WithFields(fields Fields) Logger {
	return logger{l.entry.WithFields(fields)}
}

func (l logger) Debug(args ...interface{}) {
	l.source().Debug(args...)
}

func (l logger) Debugf(format string, args ...interface{}) {
	l.source().Debugf(format, args...)
}

func (l logger) Info(args ...interface{}) {
	l.source().Info(args...)
}

func (l logger) Infoln(args ...interface{}) {
	l.source().Infoln(args...)
}

func (l logger) Infof(format string, args ...interface{}) {
	l.source().Infof(format, args...)
}

func (l logger) Warn(args ...interface{}) {
	l.source().Warn(args...)
}

func (l logger) Warnf(format string, args ...interface{}) {
	l.source().Warnf(format, args...)
}

func (l logger) withStack() *logrus.Entry {
	event := l.sourceAt(3)
	event.Errorln(stackPrefix, string(debug.Stack()))
	return event
}

func (l logger) Error(args ...interface{}) {
	l.withStack().Error(args...)
}

func (l logger) Errorf(format string, args ...interface{}) {
	l.withStack().Errorf(format, args...)
}

func (l logger) Fatal(args ...interface{}) {
	l.withStack().Fatal(args...)
}

func (l logger) Panic(args ...interface{}) {
	l.withStack().Panic(args...)
}

func (l logger) SetLevel(lvl Level) {
	l.entry.Logger.Level = logrus.Level(lvl)
}

func (l logger) IsLevelEnabled(level Level) bool {
	return l.entry.Logger.Level >= logrus.Level(level)
}

func (l logger) SetOutput(w io.Writer) {
	l.entry.Logger.Out = w
}

func (l logger) SetJSONFormatter() {
	l.entry.Logger.Formatter = &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000000Z07:00"}
}

func (l logger) source() *logrus.Entry {
	return l.sourceAt(3)
}

// sourceAt tags the event with the frame skip levels above sourceAt.
func (l logger) sourceAt(skip int) *logrus.Entry {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return l.entry
	}
	fields := logrus.Fields{
		"file": file[strings.LastIndex(file, "/")+1:],
		"line": line,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		fields["function"] = fn.Name()
	}
	return l.entry.WithFields(fields)
}

// Base returns the process-wide logger.
func Base() Logger {
	return baseLogger
}

// NewLogger returns a logger writing text to stderr at level Info.
func NewLogger() Logger {
	l := logrus.New()
	if tf, ok := l.Formatter.(*logrus.TextFormatter); ok {
		tf.TimestampFormat = "2006-01-02T15:04:05.000000 -0700"
	}
	return logger{logrus.NewEntry(l)}
}

// RegisterExitHandler registers a function to run before a Fatal log exits the process.
func RegisterExitHandler(handler func()) {
	logrus.RegisterExitHandler(handler)
}

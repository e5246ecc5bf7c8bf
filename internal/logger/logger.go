// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package logger is the leveled, writer-backed logger used by the decb and
// os9 volume engines to trace structural decisions (granule allocation,
// chain walks, directory slot reuse, bitmap/segment traversal). It never
// drives control flow: a nil *Logger is always safe to call and discards
// everything.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// Level is the minimum severity a Logger will emit.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func ParseLevel(level string) Level {
	switch level {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	}
	return InfoLevel
}

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled lines to an underlying writer, tagged with a
// component name (e.g. "decb", "os9").
type Logger struct {
	mu        *sync.Mutex
	out       io.Writer
	level     Level
	component string
}

// New creates a new logger writing to w with minimum level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		mu:    &sync.Mutex{},
		out:   w,
		level: level,
	}
}

// With returns a child logger tagged with component, sharing the parent's
// writer, mutex, and level. Used so decb.Volume and os9.Volume can log under
// distinct tags without each owning a separate writer/lock.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		mu:        l.mu,
		out:       l.out,
		level:     l.level,
		component: component,
	}
}

func (l *Logger) log(level Level, msg string) {
	if l == nil || level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.component != "" {
		fmt.Fprintf(l.out, "[%s] %s: %s\n", level.String(), l.component, msg)
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", level.String(), msg)
}

func (l *Logger) Debug(msg string) { l.log(DebugLevel, msg) }
func (l *Logger) Info(msg string)  { l.log(InfoLevel, msg) }
func (l *Logger) Warn(msg string)  { l.log(WarnLevel, msg) }
func (l *Logger) Error(msg string) { l.log(ErrorLevel, msg) }

func (l *Logger) Debugf(format string, args ...any) { l.log(DebugLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.log(InfoLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(WarnLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.log(ErrorLevel, fmt.Sprintf(format, args...)) }

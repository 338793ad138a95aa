// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Display configuration
const (
	timeFormat = "2006-01-02 15:04:05"
	levelWidth = 8 // width of the level column
)

// 🎨 level labels and their console colors
var levels = map[zerolog.Level]struct {
	label string
	color color.Attribute
}{
	zerolog.DebugLevel: {"DEBUG", color.FgCyan},
	zerolog.InfoLevel:  {"INFO", color.FgGreen},
	zerolog.WarnLevel:  {"WARNING", color.FgYellow},
	zerolog.ErrorLevel: {"ERROR", color.FgRed},
}

// 🎯 Logger writes each record as a colored console line and, when a file
// sink is attached, as a zerolog JSON line
type Logger struct {
	name    string
	level   zerolog.Level
	console io.Writer
	zlog    zerolog.Logger
	now     func() time.Time
	mu      sync.Mutex
}

// 🔧 Option configures a Logger
type Option func(*Logger)

// WithFile mirrors every record to w as JSON lines
func WithFile(w io.Writer) Option {
	return func(l *Logger) {
		l.zlog = zerolog.New(w).Level(l.level).With().Timestamp().Str("logger", l.name).Logger()
	}
}

// WithClock replaces time.Now for the console timestamp
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// 🏭 New creates a logger named name that drops records below level
func New(name string, console io.Writer, level zerolog.Level, opts ...Option) *Logger {
	if console == nil {
		console = io.Discard
	}
	l := &Logger{
		name:    name,
		level:   level,
		console: console,
		zlog:    zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// 🔇 Nop returns a logger that discards everything
func Nop() *Logger {
	return New("nop", io.Discard, zerolog.Disabled)
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// Level returns the minimum level that is written
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to Nop
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Nop()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// ParseLevel maps a level name to a zerolog level. "warning" is accepted
// next to the zerolog names.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zerolog.WarnLevel, nil
	}
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, errors.Errorf("parsing log level %q: %w", s, err)
	}
	return lvl, nil
}

// formatLine renders one console record
func (l *Logger) formatLine(level zerolog.Level, msg string) string {
	spec := levels[level]
	label := color.New(spec.color).Sprint(fmt.Sprintf("%-*s", levelWidth, spec.label))
	return fmt.Sprintf("%s | %s | %s | %s", l.now().Format(timeFormat), label, l.name, msg)
}

func (l *Logger) write(level zerolog.Level, msg string) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatLine(level, msg))
	l.zlog.WithLevel(level).Msg(msg)
}

// 📝 Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.write(zerolog.DebugLevel, msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.write(zerolog.InfoLevel, msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.write(zerolog.WarnLevel, msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.write(zerolog.ErrorLevel, msg)
}

// 📝 Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Debug(fmt.Sprintf(format, args...))
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

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

// Package timer measures how long a named step takes and logs the result.
package timer

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// 📢 Logger receives the timing line
type Logger interface {
	Info(msg string)
	Warning(msg string)
}

// ⏱️ Timer measures one named step. Only the first Stop or Fail logs;
// later calls return the recorded duration.
type Timer struct {
	name   string
	logger Logger
	now    func() time.Time
	start  time.Time

	mu      sync.Mutex
	done    bool
	elapsed time.Duration
}

// 🔧 Option configures a Timer
type Option func(*Timer)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(t *Timer) {
		t.now = now
	}
}

// 🏭 Start starts a timer. A nil logger writes to stdout through zerolog.
func Start(name string, l Logger, opts ...Option) *Timer {
	if l == nil {
		l = stdoutLogger()
	}
	t := &Timer{
		name:   name,
		logger: l,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.start = t.now()
	return t
}

// Name returns the step name
func (t *Timer) Name() string {
	return t.name
}

// ✅ Stop records the elapsed time and logs "name: 1.234s" at info level
func (t *Timer) Stop() time.Duration {
	return t.finish(false)
}

// ❌ Fail records the elapsed time and logs "name (failed): 1.234s" as a warning
func (t *Timer) Fail() time.Duration {
	return t.finish(true)
}

// Elapsed returns the recorded duration once stopped, or the running time
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return t.elapsed
	}
	return t.now().Sub(t.start)
}

func (t *Timer) finish(failed bool) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return t.elapsed
	}
	t.done = true
	t.elapsed = t.now().Sub(t.start)

	if failed {
		t.logger.Warning(Format(t.name+" (failed)", t.elapsed))
	} else {
		t.logger.Info(Format(t.name, t.elapsed))
	}
	return t.elapsed
}

// 📝 Format renders a timing line with millisecond precision
func Format(label string, d time.Duration) string {
	return fmt.Sprintf("%s: %.3fs", label, d.Seconds())
}

// 🎯 Measure times fn under name and returns its error. A non-nil error or a
// panic counts as a failure; the panic is re-raised after logging.
func Measure(name string, l Logger, fn func() error) (err error) {
	t := Start(name, l)
	defer func() {
		if r := recover(); r != nil {
			t.Fail()
			panic(r)
		}
		if err != nil {
			t.Fail()
		} else {
			t.Stop()
		}
	}()
	return fn()
}

// zerologLogger adapts a zerolog.Logger to Logger
type zerologLogger struct {
	zlog zerolog.Logger
}

func (z zerologLogger) Info(msg string)    { z.zlog.Info().Msg(msg) }
func (z zerologLogger) Warning(msg string) { z.zlog.Warn().Msg(msg) }

// FromZerolog wraps a zerolog logger, e.g. zerolog.Ctx(ctx)
func FromZerolog(zlog zerolog.Logger) Logger {
	return zerologLogger{zlog: zlog}
}

func stdoutLogger() Logger {
	return FromZerolog(zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger())
}

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

package timer_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pochi/pkg/timer"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Info(msg string)    { m.Called(msg) }
func (m *mockLogger) Warning(msg string) { m.Called(msg) }

// fakeClock advances by step on every call
func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestTimer(t *testing.T) {
	tests := []struct {
		name      string
		finish    func(tm *timer.Timer) time.Duration
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "stop",
			finish:    (*timer.Timer).Stop,
			wantLevel: "Info",
			wantMsg:   "train: 1.500s",
		},
		{
			name:      "fail",
			finish:    (*timer.Timer).Fail,
			wantLevel: "Warning",
			wantMsg:   "train (failed): 1.500s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg := &mockLogger{}
			lg.On(tt.wantLevel, tt.wantMsg).Once()

			tm := timer.Start("train", lg, timer.WithClock(fakeClock(1500*time.Millisecond)))
			got := tt.finish(tm)

			assert.Equal(t, 1500*time.Millisecond, got)
			lg.AssertExpectations(t)

			// later calls do not log again and keep the recorded value
			assert.Equal(t, got, tm.Stop())
			assert.Equal(t, got, tm.Fail())
			assert.Equal(t, got, tm.Elapsed())
			lg.AssertNumberOfCalls(t, tt.wantLevel, 1)
		})
	}
}

func TestElapsedWhileRunning(t *testing.T) {
	tm := timer.Start("run", &mockLogger{}, timer.WithClock(fakeClock(time.Second)))
	assert.Equal(t, time.Second, tm.Elapsed())
	assert.Equal(t, 2*time.Second, tm.Elapsed(), "a running timer keeps counting")
	assert.Equal(t, "run", tm.Name())
}

func TestMeasure(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		lg := &mockLogger{}
		lg.On("Info", mock.MatchedBy(func(msg string) bool { return len(msg) > 0 })).Once()

		err := timer.Measure("step", lg, func() error { return nil })
		require.NoError(t, err)
		lg.AssertExpectations(t)
	})

	t.Run("error", func(t *testing.T) {
		lg := &mockLogger{}
		lg.On("Warning", mock.Anything).Once()
		boom := errors.New("boom")

		err := timer.Measure("step", lg, func() error { return boom })
		assert.ErrorIs(t, err, boom)
		lg.AssertExpectations(t)
		lg.AssertNotCalled(t, "Info", mock.Anything)
	})

	t.Run("panic", func(t *testing.T) {
		lg := &mockLogger{}
		lg.On("Warning", mock.Anything).Once()

		assert.PanicsWithValue(t, "kaboom", func() {
			_ = timer.Measure("step", lg, func() error { panic("kaboom") })
		})
		lg.AssertExpectations(t)
	})
}

func TestFromZerolog(t *testing.T) {
	var buf bytes.Buffer
	lg := timer.FromZerolog(zerolog.New(&buf))

	tm := timer.Start("load", lg, timer.WithClock(fakeClock(250*time.Millisecond)))
	tm.Fail()

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"message":"load (failed): 0.250s"`)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "x: 0.000s", timer.Format("x", 0))
	assert.Equal(t, "x: 61.234s", timer.Format("x", 61234*time.Millisecond))
}

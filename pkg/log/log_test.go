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
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		level    zerolog.Level
		op       func(logger *Logger)
		wantLogs []string
	}{
		{
			name:  "log_messages",
			level: zerolog.DebugLevel,
			op: func(logger *Logger) {
				logger.Debug("debug message")
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
			},
			wantLogs: []string{
				"2025-03-04 05:06:07 | DEBUG    | app.sub | debug message",
				"2025-03-04 05:06:07 | INFO     | app.sub | info message",
				"2025-03-04 05:06:07 | WARNING  | app.sub | warning message",
				"2025-03-04 05:06:07 | ERROR    | app.sub | error message",
			},
		},
		{
			name:  "formatted_messages",
			level: zerolog.DebugLevel,
			op: func(logger *Logger) {
				logger.Debugf("debug %d", 1)
				logger.Infof("info %s", "two")
				logger.Warningf("warning %v", true)
				logger.Errorf("error %.1f", 4.0)
			},
			wantLogs: []string{
				"2025-03-04 05:06:07 | DEBUG    | app.sub | debug 1",
				"2025-03-04 05:06:07 | INFO     | app.sub | info two",
				"2025-03-04 05:06:07 | WARNING  | app.sub | warning true",
				"2025-03-04 05:06:07 | ERROR    | app.sub | error 4.0",
			},
		},
		{
			name:  "level_filter",
			level: zerolog.WarnLevel,
			op: func(logger *Logger) {
				logger.Debug("hidden")
				logger.Info("hidden")
				logger.Warning("shown")
				logger.Error("shown too")
			},
			wantLogs: []string{
				"2025-03-04 05:06:07 | WARNING  | app.sub | shown",
				"2025-03-04 05:06:07 | ERROR    | app.sub | shown too",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New("app.sub", &buf, tt.level, WithClock(fixedClock))

			tt.op(logger)

			got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			assert.Equal(t, tt.wantLogs, got, "console output should match")
		})
	}
}

func TestLoggerColorIsPresentationOnly(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	var colored bytes.Buffer
	New("x", &colored, zerolog.InfoLevel, WithClock(fixedClock)).Warning("careful")

	assert.Contains(t, colored.String(), "\x1b[33m", "warning level should be yellow")
	assert.Contains(t, colored.String(), "| x | careful", "message text should be unchanged")
}

func TestLoggerFileSink(t *testing.T) {
	var console, file bytes.Buffer
	logger := New("app.file", &console, zerolog.InfoLevel, WithFile(&file))

	logger.Debug("dropped")
	logger.Info("kept")
	logger.Error("bad")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2, "debug should be filtered from the file sink too")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "kept", rec["message"])
	assert.Equal(t, "app.file", rec["logger"])
	assert.Contains(t, rec, "time")

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	assert.Equal(t, "error", rec["level"])
}

func TestNopAndContext(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, FromContext(ctx), "missing logger should fall back to nop")

	logger := New("ctx", nil, zerolog.InfoLevel)
	ctx = NewContext(ctx, logger)
	assert.Same(t, logger, FromContext(ctx))

	// nop never panics and writes nowhere
	Nop().Error("nothing")
	assert.Equal(t, zerolog.Disabled, Nop().Level())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{in: "debug", want: zerolog.DebugLevel},
		{in: "INFO", want: zerolog.InfoLevel},
		{in: "warning", want: zerolog.WarnLevel},
		{in: "warn", want: zerolog.WarnLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

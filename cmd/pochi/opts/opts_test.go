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

package opts_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/pochi/cmd/pochi/opts"
	"github.com/walteh/pochi/pkg/fileops"
	"github.com/walteh/pochi/pkg/workspace"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	pterm.DisableColor()
	os.Exit(m.Run())
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    *opts.Settings
		wantErr bool
	}{
		{
			name: "no_file",
			want: &opts.Settings{LogLevel: "info"},
		},
		{
			name:    "yaml",
			file:    "s.yaml",
			content: "log_dir: logs\nworkspace:\n  base_dir: runs\n  subdirs: [models, logs]\n",
			want: &opts.Settings{
				LogLevel:  "info",
				LogDir:    "logs",
				Workspace: opts.WorkspaceSettings{BaseDir: "runs", Subdirs: []string{"models", "logs"}},
			},
		},
		{
			name:    "hcl",
			file:    "s.hcl",
			content: "log_level = \"warning\"\nworkspace = { prefix = \"exp\" }\n",
			want: &opts.Settings{
				LogLevel:  "warning",
				Workspace: opts.WorkspaceSettings{Prefix: "exp"},
			},
		},
		{
			name:    "bad_level",
			file:    "bad.yaml",
			content: "log_level: chatty\n",
			wantErr: true,
		},
		{
			name:    "wrong_type",
			file:    "type.json",
			content: `{"workspace": {"subdirs": "models"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = filepath.Join(dir, tt.file)
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			got, err := opts.LoadSettings(testContext(t), path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInit(t *testing.T) {
	var out, console bytes.Buffer
	o := &opts.RootOpts{}
	settings := &opts.Settings{LogLevel: "error", LogDir: t.TempDir()}

	require.NoError(t, o.Init(testContext(t), settings, true, &out, &console))
	defer o.Close()

	require.NotNil(t, o.Pochi)
	assert.Same(t, o.Logger, o.Pochi.Logger())
	assert.Equal(t, zerolog.DebugLevel, o.Logger.Level(), "debug overrides the settings level")
	assert.FileExists(t, filepath.Join(settings.LogDir, "pochi.log"))
	assert.NoError(t, o.Close())
}

func TestUserLoggerTransfer(t *testing.T) {
	var out bytes.Buffer
	u := opts.NewUserLogger(testContext(t), &out)

	root := filepath.FromSlash("/data/src")
	u.LogTransfer(&fileops.TransferResult{
		Mode:       fileops.ModeMove,
		SourceRoot: root,
		DestRoot:   filepath.FromSlash("/data/dst"),
		Transferred: []fileops.Transfer{
			{Source: filepath.Join(root, "a.txt"), Dest: filepath.FromSlash("/data/dst/a.txt")},
		},
		Errors: []*fileops.TransferError{
			{Source: filepath.Join(root, "b.txt"), Stage: fileops.StageCopy, Err: errors.New("disk full")},
			{Source: filepath.Join(root, "c.txt"), Stage: fileops.StageRemove, Err: errors.New("busy")},
		},
	})

	got := out.String()
	assert.Contains(t, got, "✓ a.txt")
	assert.Contains(t, got, "✗ b.txt")
	assert.Contains(t, got, "copy failed")
	assert.Contains(t, got, "⟳ c.txt")
	assert.Contains(t, got, "not removed")
	assert.Contains(t, got, "1/3 files (33%)")
	assert.Contains(t, got, "disk full")
}

func TestUserLoggerWorkspace(t *testing.T) {
	var out bytes.Buffer
	u := opts.NewUserLogger(testContext(t), &out)

	ws, err := workspace.NewCreator().Create(testContext(t), workspace.Options{
		BaseDir: t.TempDir(),
		Prefix:  "exp",
		Subdirs: []string{"models"},
	})
	require.NoError(t, err)

	require.NoError(t, u.LogWorkspace(ws))
	assert.Contains(t, out.String(), "created "+ws.Root)
	assert.Contains(t, out.String(), filepath.Join(ws.Root, "models"))
}

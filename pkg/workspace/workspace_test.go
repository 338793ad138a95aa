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

package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/pochi/pkg/workspace"
)

var testDay = time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func newCreator(t *testing.T) *workspace.Creator {
	return &workspace.Creator{
		Now:     func() time.Time { return testDay },
		WorkDir: t.TempDir(),
	}
}

func TestNextIndex(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{name: "empty", existing: nil, want: 1},
		{name: "other_dates_only", existing: []string{"20250303_001", "20250305_009"}, want: 1},
		{name: "continues_after_highest", existing: []string{"20250304_001", "20250304_003"}, want: 4},
		{name: "gaps_are_not_filled", existing: []string{"20250304_005"}, want: 6},
		{name: "non_numeric_ignored", existing: []string{"20250304_abc", "20250304_002"}, want: 3},
		{name: "suffix_after_index", existing: []string{"20250304_007_old"}, want: 8},
		{name: "beyond_three_digits", existing: []string{"20250304_999"}, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workspace.NextIndex(tt.existing, "20250304"))
		})
	}
}

func TestNextPrefixIndex(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{name: "empty", existing: nil, want: 1},
		{name: "sequential", existing: []string{"exp1", "exp2"}, want: 3},
		{name: "first_gap", existing: []string{"exp1", "exp3"}, want: 2},
		{name: "other_prefix", existing: []string{"run1"}, want: 1},
		{name: "zero_padded_is_different", existing: []string{"exp01"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workspace.NextPrefixIndex(tt.existing, "exp"))
		})
	}
}

func TestDatedName(t *testing.T) {
	assert.Equal(t, "20250304_001", workspace.DatedName(workspace.DateString(testDay), 1))
	assert.Equal(t, "20250304_1000", workspace.DatedName("20250304", 1000))
}

func TestCreateDated(t *testing.T) {
	c := newCreator(t)
	ctx := testContext(t)

	first, err := c.Create(ctx, workspace.Options{BaseDir: "runs", Subdirs: []string{"models", "logs"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.WorkDir, "runs", "20250304_001"), first.Root)
	assert.Equal(t, []string{"models", "logs"}, first.Subdirs())

	models, err := first.Dir("models")
	require.NoError(t, err)
	assert.DirExists(t, models)
	assert.DirExists(t, filepath.Join(first.Root, "logs"))

	second, err := c.Create(ctx, workspace.Options{BaseDir: "runs"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.WorkDir, "runs", "20250304_002"), second.Root)
	assert.Empty(t, second.Subdirs())
}

func TestCreateDatedIgnoresFiles(t *testing.T) {
	c := newCreator(t)
	base := filepath.Join(c.WorkDir, "runs")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "20250304_004"), []byte("x"), 0o644))

	ws, err := c.Create(testContext(t), workspace.Options{BaseDir: base})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "20250304_001"), ws.Root, "files do not count as used indices")
}

func TestCreatePrefixed(t *testing.T) {
	c := newCreator(t)
	ctx := testContext(t)
	base := filepath.Join(c.WorkDir, "exps")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "exp2"), 0o755))

	a, err := c.Create(ctx, workspace.Options{BaseDir: base, Prefix: "exp"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "exp1"), a.Root)

	b, err := c.Create(ctx, workspace.Options{BaseDir: base, Prefix: "exp"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "exp3"), b.Root, "existing exp2 is skipped")
}

func TestCreateDefault(t *testing.T) {
	c := newCreator(t)

	ws, err := c.Create(testContext(t), workspace.Options{Subdirs: []string{"ignored"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.WorkDir, workspace.DefaultDir), ws.Root)
	assert.DirExists(t, ws.Root)
	assert.NoDirExists(t, filepath.Join(ws.Root, "ignored"), "the default workspace has no subdirs")

	again, err := c.Create(testContext(t), workspace.Options{})
	require.NoError(t, err)
	assert.Equal(t, ws.Root, again.Root, "the default workspace is reused")
}

func TestCreateInvalidNames(t *testing.T) {
	tests := []struct {
		name string
		opts workspace.Options
	}{
		{name: "empty_subdir", opts: workspace.Options{BaseDir: "runs", Subdirs: []string{""}}},
		{name: "nested_subdir", opts: workspace.Options{BaseDir: "runs", Subdirs: []string{"a/b"}}},
		{name: "parent_subdir", opts: workspace.Options{BaseDir: "runs", Subdirs: []string{".."}}},
		{name: "prefix_with_separator", opts: workspace.Options{BaseDir: "runs", Prefix: "../exp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCreator(t)
			_, err := c.Create(testContext(t), tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, workspace.ErrInvalidName)
			assert.NoDirExists(t, filepath.Join(c.WorkDir, "runs"), "nothing is created for invalid input")
		})
	}
}

func TestWorkspaceDirUnknown(t *testing.T) {
	ws, err := newCreator(t).Create(testContext(t), workspace.Options{BaseDir: "runs", Subdirs: []string{"models"}})
	require.NoError(t, err)

	_, err = ws.Dir("logs")
	require.Error(t, err)
	assert.ErrorIs(t, err, workspace.ErrUnknownSubdir)
	assert.Contains(t, err.Error(), "models", "error should list the available subdirs")
	assert.Contains(t, ws.String(), "subdirs=[models]")
}

func TestCreateDatedSkipsFileWithSameName(t *testing.T) {
	c := newCreator(t)
	base := filepath.Join(c.WorkDir, "runs")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "20250304_001"), []byte("x"), 0o644))

	ws, err := c.Create(testContext(t), workspace.Options{BaseDir: base})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "20250304_002"), ws.Root)
}

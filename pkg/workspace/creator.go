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

package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultDir is created when Options.BaseDir is empty
	DefaultDir = "outputs"

	dirPerm = 0o755

	// attempts to claim a fresh name when another process takes it first
	maxClaimAttempts = 100
)

// 🔧 Options selects where and how a workspace is created
type Options struct {
	BaseDir string   // parent directory; empty creates DefaultDir only
	Subdirs []string // created inside the workspace
	Prefix  string   // numbered names prefix1, prefix2, ... instead of dated ones
}

// 🏭 Creator creates workspace directories
type Creator struct {
	// Now returns the time used for dated names
	Now func() time.Time
	// WorkDir resolves relative paths; empty means the process working directory
	WorkDir string
}

// 🏭 NewCreator creates a Creator using the wall clock
func NewCreator() *Creator {
	return &Creator{Now: time.Now}
}

// 🎯 Create makes a new workspace.
//
//   - BaseDir empty: DefaultDir is created (or reused) and returned as is
//   - Prefix empty: BaseDir/yyyymmdd_NNN with the next free index for today
//   - Prefix set: BaseDir/<prefix><n> with the smallest free n
//
// The numbered directory itself is created with a single Mkdir, so two
// concurrent calls never share a workspace.
func (c *Creator) Create(ctx context.Context, opts Options) (*Workspace, error) {
	logger := zerolog.Ctx(ctx)

	for _, s := range opts.Subdirs {
		if err := checkName("subdirectory", s); err != nil {
			return nil, err
		}
	}
	subdirs := lo.Uniq(opts.Subdirs)

	if opts.BaseDir == "" {
		root := c.resolve(DefaultDir)
		if err := os.MkdirAll(root, dirPerm); err != nil {
			return nil, errors.Errorf("creating %s: %w", root, err)
		}
		logger.Debug().Str("root", root).Msg("using default workspace")
		return &Workspace{Root: root}, nil
	}

	if opts.Prefix != "" {
		if err := checkName("prefix", opts.Prefix); err != nil {
			return nil, err
		}
	}

	base := c.resolve(opts.BaseDir)
	if err := os.MkdirAll(base, dirPerm); err != nil {
		return nil, errors.Errorf("creating base directory %s: %w", base, err)
	}

	root, err := c.claim(base, opts.Prefix)
	if err != nil {
		return nil, err
	}

	for _, s := range subdirs {
		if err := os.MkdirAll(filepath.Join(root, s), dirPerm); err != nil {
			return nil, errors.Errorf("creating subdirectory %s: %w", s, err)
		}
	}

	logger.Debug().Str("root", root).Strs("subdirs", subdirs).Msg("workspace created")
	return &Workspace{Root: root, subdirs: subdirs}, nil
}

// claim picks the next name below base and creates it, retrying with a new
// name when the chosen one appears in the meantime
func (c *Creator) claim(base, prefix string) (string, error) {
	// names that failed with ErrExist, e.g. a regular file with a dated name
	var taken []string
	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		entries, err := os.ReadDir(base)
		if err != nil {
			return "", errors.Errorf("listing %s: %w", base, err)
		}

		var name string
		if prefix != "" {
			names := lo.Map(entries, func(e fs.DirEntry, _ int) string { return e.Name() })
			name = prefix + strconv.Itoa(NextPrefixIndex(names, prefix))
		} else {
			dirs := lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
				return e.Name(), e.IsDir()
			})
			date := DateString(c.now())
			name = DatedName(date, NextIndex(append(dirs, taken...), date))
		}

		root := filepath.Join(base, name)
		err = os.Mkdir(root, dirPerm)
		if err == nil {
			return root, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", errors.Errorf("creating workspace %s: %w", root, err)
		}
		taken = append(taken, name)
	}
	return "", errors.Errorf("no free workspace name below %s after %d attempts", base, maxClaimAttempts)
}

func (c *Creator) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Creator) resolve(path string) string {
	if c.WorkDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.WorkDir, path)
}

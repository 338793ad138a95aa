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

package pochi

import (
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pochi/pkg/config"
	"github.com/walteh/pochi/pkg/fileops"
	"github.com/walteh/pochi/pkg/log"
	"github.com/walteh/pochi/pkg/timer"
	"github.com/walteh/pochi/pkg/workspace"
)

// 📁 DirectoryCreator creates a directory and returns its path
type DirectoryCreator interface {
	Create(path string, parents bool) (string, error)
}

// 🏗️ WorkspaceCreator creates run workspaces
type WorkspaceCreator interface {
	Create(ctx context.Context, opts workspace.Options) (*workspace.Workspace, error)
}

// 📂 FileOps finds and transfers files
type FileOps interface {
	Find(ctx context.Context, root, pattern string) ([]string, error)
	FindExtensions(ctx context.Context, root string, exts ...string) ([]string, error)
	Copy(ctx context.Context, sourceRoot, destRoot, pattern string) (*fileops.TransferResult, error)
	Move(ctx context.Context, sourceRoot, destRoot, pattern string) (*fileops.TransferResult, error)
	Mirror(ctx context.Context, sourceRoot, destRoot, pattern string) ([]fileops.Transfer, error)
}

// 🔧 Options holds the collaborators of a Pochi. Nil fields get the
// filesystem-backed defaults.
type Options struct {
	Logger      *log.Logger
	Directories DirectoryCreator
	Workspaces  WorkspaceCreator
	Files       FileOps
}

// 🐶 Pochi bundles the file, workspace, timing and config helpers behind one
// value
type Pochi struct {
	logger      *log.Logger
	directories DirectoryCreator
	workspaces  WorkspaceCreator
	files       FileOps
}

// 🏭 New creates a Pochi from opts
func New(opts Options) *Pochi {
	p := &Pochi{
		logger:      opts.Logger,
		directories: opts.Directories,
		workspaces:  opts.Workspaces,
		files:       opts.Files,
	}
	if p.logger == nil {
		p.logger = log.New("pochi", os.Stdout, zerolog.InfoLevel)
	}
	if p.directories == nil {
		p.directories = OSDirectoryCreator{}
	}
	if p.workspaces == nil {
		p.workspaces = workspace.NewCreator()
	}
	if p.files == nil {
		p.files = fileops.New(fileops.WithLogger(p.logger))
	}
	return p
}

// Logger returns the logger used for progress messages
func (p *Pochi) Logger() *log.Logger {
	return p.logger
}

// 📁 Mkdir creates path, with missing parents when parents is set. An
// existing directory is not an error.
func (p *Pochi) Mkdir(path string, parents bool) (string, error) {
	return p.directories.Create(path, parents)
}

// 🏗️ Workspace creates a run workspace, see workspace.Creator.Create
func (p *Pochi) Workspace(ctx context.Context, opts workspace.Options) (*workspace.Workspace, error) {
	return p.workspaces.Create(ctx, opts)
}

// 🔍 Find returns the files below root matching pattern
func (p *Pochi) Find(ctx context.Context, root, pattern string) ([]string, error) {
	return p.files.Find(ctx, root, pattern)
}

// 🔍 FindExtensions returns the files below root with one of exts
func (p *Pochi) FindExtensions(ctx context.Context, root string, exts ...string) ([]string, error) {
	return p.files.FindExtensions(ctx, root, exts...)
}

// 📋 Copy copies matching files from sourceRoot to destRoot keeping their layout
func (p *Pochi) Copy(ctx context.Context, sourceRoot, destRoot, pattern string) (*fileops.TransferResult, error) {
	return p.files.Copy(ctx, sourceRoot, destRoot, pattern)
}

// 🚚 Move moves matching files from sourceRoot to destRoot keeping their layout
func (p *Pochi) Move(ctx context.Context, sourceRoot, destRoot, pattern string) (*fileops.TransferResult, error) {
	return p.files.Move(ctx, sourceRoot, destRoot, pattern)
}

// 🪞 Mirror creates the destination directories for matching files only
func (p *Pochi) Mirror(ctx context.Context, sourceRoot, destRoot, pattern string) ([]fileops.Transfer, error) {
	return p.files.Mirror(ctx, sourceRoot, destRoot, pattern)
}

// ⏱️ Timer starts a timer that reports to the Pochi logger
func (p *Pochi) Timer(name string) *timer.Timer {
	return timer.Start(name, p.logger)
}

// 📚 LoadConfig loads path into out, see config.Load
func (p *Pochi) LoadConfig(ctx context.Context, path string, out any) error {
	return config.Load(ctx, path, out)
}

// 📁 OSDirectoryCreator creates directories on the local filesystem
type OSDirectoryCreator struct{}

// Create makes path. Without parents a missing parent is an error.
func (OSDirectoryCreator) Create(path string, parents bool) (string, error) {
	if parents {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return "", errors.Errorf("creating directory %s: %w", path, err)
		}
		return path, nil
	}

	err := os.Mkdir(path, 0o755)
	if err == nil {
		return path, nil
	}
	if errors.Is(err, fs.ErrExist) {
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return path, nil
		}
	}
	return "", errors.Errorf("creating directory %s: %w", path, err)
}

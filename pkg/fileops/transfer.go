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

package fileops

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	dirPerm    = 0o755
	tmpPattern = ".pochi-*.tmp"
)

// removeSource deletes a moved file's source; tests replace it
var removeSource = os.Remove

// 📋 Copy copies every file below sourceRoot matching pattern to the same
// relative path below destRoot.
//
// Existing destination files are replaced, the source is never modified.
// Files that fail are collected in the result and do not stop the others.
// A missing sourceRoot or a bad pattern is returned as an error before
// anything is created.
func (o *Ops) Copy(ctx context.Context, sourceRoot, destRoot, pattern string) (*TransferResult, error) {
	return o.transfer(ctx, ModeCopy, sourceRoot, destRoot, pattern)
}

// 🚚 Move is Copy followed by removal of each source file whose copy
// succeeded. A file whose source cannot be removed is reported with
// StageRemove and is left in both places.
func (o *Ops) Move(ctx context.Context, sourceRoot, destRoot, pattern string) (*TransferResult, error) {
	return o.transfer(ctx, ModeMove, sourceRoot, destRoot, pattern)
}

// 🪞 Mirror creates the destination directories Copy would create for pattern
// and returns the source/destination pairs without copying any content
func (o *Ops) Mirror(ctx context.Context, sourceRoot, destRoot, pattern string) ([]Transfer, error) {
	absSrc, absDst, files, err := o.prepare(ctx, sourceRoot, destRoot, pattern)
	if err != nil {
		return nil, err
	}

	pairs := make([]Transfer, 0, len(files))
	for _, src := range files {
		dst, err := destination(absSrc, absDst, src)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
			return nil, errors.Errorf("creating directory for %s: %w", dst, err)
		}
		pairs = append(pairs, Transfer{Source: src, Dest: dst})
	}
	return pairs, nil
}

func (o *Ops) transfer(ctx context.Context, mode Mode, sourceRoot, destRoot, pattern string) (*TransferResult, error) {
	logger := zerolog.Ctx(ctx)

	absSrc, absDst, files, err := o.prepare(ctx, sourceRoot, destRoot, pattern)
	if err != nil {
		return nil, err
	}

	result := &TransferResult{
		Mode:        mode,
		SourceRoot:  absSrc,
		DestRoot:    absDst,
		Transferred: []Transfer{},
	}

	for _, src := range files {
		dst, err := destination(absSrc, absDst, src)
		if err != nil {
			o.fail(ctx, result, &TransferError{Source: src, Stage: StageCopy, Err: err})
			continue
		}

		if err := copyFile(src, dst); err != nil {
			o.fail(ctx, result, &TransferError{Source: src, Dest: dst, Stage: StageCopy, Err: err})
			continue
		}

		if mode == ModeMove {
			if err := removeSource(src); err != nil {
				o.fail(ctx, result, &TransferError{Source: src, Dest: dst, Stage: StageRemove, Err: err})
				continue
			}
		}

		result.Transferred = append(result.Transferred, Transfer{Source: src, Dest: dst})
		logger.Debug().Str("source", src).Str("dest", dst).Stringer("mode", mode).Msg("file transferred")
		if o.logger != nil {
			o.logger.Info(fmt.Sprintf("%s %s -> %s", pastTense(mode), src, dst))
		}
	}

	logger.Debug().
		Stringer("mode", mode).
		Int("transferred", len(result.Transferred)).
		Int("failed", len(result.Errors)).
		Msg("transfer complete")

	return result, nil
}

// prepare resolves both roots and the file list, creating destRoot only after
// the source side checked out
func (o *Ops) prepare(ctx context.Context, sourceRoot, destRoot, pattern string) (string, string, []string, error) {
	absDst, err := filepath.Abs(destRoot)
	if err != nil {
		return "", "", nil, errors.Errorf("getting absolute path of %s: %w", destRoot, err)
	}

	// a destination inside the source is left out of the walk, so earlier
	// runs are never copied into themselves
	absSrc, files, err := o.match(ctx, sourceRoot, pattern, resolveExisting(absDst))
	if err != nil {
		return "", "", nil, err
	}

	if err := os.MkdirAll(absDst, dirPerm); err != nil {
		return "", "", nil, errors.Errorf("creating destination root: %w", err)
	}

	// compare resolved paths so a symlinked destination is caught too
	if resolved, err := filepath.EvalSymlinks(absDst); err == nil {
		absDst = resolved
	}
	if absDst == absSrc {
		return "", "", nil, errors.Errorf("source and destination are the same directory: %s", absSrc)
	}

	return absSrc, absDst, files, nil
}

// resolveExisting resolves symlinks in the longest existing prefix of path and
// appends the part that does not exist yet
func resolveExisting(path string) string {
	var missing []string
	for d := path; ; {
		if resolved, err := filepath.EvalSymlinks(d); err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...)
		}
		parent := filepath.Dir(d)
		if parent == d {
			return path
		}
		missing = append([]string{filepath.Base(d)}, missing...)
		d = parent
	}
}

func (o *Ops) fail(ctx context.Context, result *TransferResult, terr *TransferError) {
	result.Errors = append(result.Errors, terr)
	zerolog.Ctx(ctx).Debug().Err(terr.Err).Str("source", terr.Source).Stringer("stage", terr.Stage).Msg("file transfer failed")
	if o.logger != nil {
		o.logger.Error(terr.Error())
	}
}

// destination re-bases src from absSrc onto absDst
func destination(absSrc, absDst, src string) (string, error) {
	rel, err := filepath.Rel(absSrc, src)
	if err != nil {
		return "", errors.Errorf("computing relative path for %s: %w", src, err)
	}
	return filepath.Join(absDst, rel), nil
}

// copyFile copies src to dst through a temporary sibling that is renamed into
// place, so dst is either the previous file or a complete copy. Directories
// created for dst are removed again if the copy fails.
func copyFile(src, dst string) (err error) {
	created, err := mkdirParents(filepath.Dir(dst))
	defer func() {
		if err != nil {
			removeEmpty(created)
		}
	}()
	if err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	if info, statErr := os.Lstat(dst); statErr == nil && info.IsDir() {
		return errors.Errorf("destination %s is a directory", dst)
	}

	// fixed length name that never replaces an existing file
	f, err := os.CreateTemp(filepath.Dir(dst), tmpPattern)
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := cp.Copy(src, tmp, cp.Options{
		PreserveTimes: true,
		Sync:          true,
	}); err != nil {
		os.Remove(tmp)
		return errors.Errorf("copying content: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// mkdirParents creates dir and returns the directories that did not exist
// before, deepest first
func mkdirParents(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; {
		if _, err := os.Lstat(d); !errors.Is(err, fs.ErrNotExist) {
			break
		}
		missing = append(missing, d)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return missing, err
	}
	return missing, nil
}

// removeEmpty removes each directory in order, stopping silently at the first
// one that is not empty
func removeEmpty(dirs []string) {
	for _, d := range dirs {
		if err := os.Remove(d); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return
		}
	}
}

func pastTense(m Mode) string {
	if m == ModeMove {
		return "moved"
	}
	return "copied"
}

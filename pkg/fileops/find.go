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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Find returns the regular files below root whose slash separated path
// relative to root matches pattern.
//
// Results are absolute paths in walk order: entries of each directory are
// visited lexically, so "a/b.txt" comes before "a/c/d.txt" which comes before
// "b.txt". Matching is case sensitive, hidden files are included, and symlinks
// are neither followed nor returned.
func (o *Ops) Find(ctx context.Context, root, pattern string) ([]string, error) {
	_, files, err := o.match(ctx, root, pattern, "")
	if err != nil {
		return nil, err
	}
	return files, nil
}

// 🔍 FindExtensions returns the regular files below root whose name ends with
// one of exts. A missing leading dot is added, so "jpg" and ".jpg" are equal.
func (o *Ops) FindExtensions(ctx context.Context, root string, exts ...string) ([]string, error) {
	suffixes := lo.Uniq(lo.FilterMap(exts, func(ext string, _ int) (string, bool) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return "", false
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return ext, true
	}))
	if len(suffixes) == 0 {
		return nil, errors.Errorf("%w: no extensions given", ErrInvalidPattern)
	}

	absRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	return walkFiles(ctx, absRoot, "", func(_, name string) bool {
		return lo.ContainsBy(suffixes, func(suffix string) bool {
			return strings.HasSuffix(name, suffix)
		})
	})
}

// match validates the pattern and root and returns the resolved root with the
// matching files. The directory skip, when it lies below root, is not walked.
func (o *Ops) match(ctx context.Context, root, pattern, skip string) (string, []string, error) {
	pattern, err := normalizePattern(pattern)
	if err != nil {
		return "", nil, err
	}

	absRoot, err := resolveRoot(root)
	if err != nil {
		return "", nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("root", absRoot).Str("pattern", pattern).Msg("finding files")

	files, err := walkFiles(ctx, absRoot, skip, func(rel, _ string) bool {
		// pattern was validated, Match can only fail with ErrBadPattern
		ok, _ := doublestar.Match(pattern, rel)
		return ok
	})
	if err != nil {
		return "", nil, err
	}
	return absRoot, files, nil
}

// normalizePattern converts pattern to the slash separated form doublestar expects
func normalizePattern(pattern string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", errors.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	pattern = filepath.ToSlash(pattern)
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimPrefix(pattern, "./")
	}
	if !doublestar.ValidatePattern(pattern) {
		return "", errors.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	return pattern, nil
}

// resolveRoot returns the absolute, symlink free path of root, which must be
// an existing directory
func resolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("getting absolute path of %s: %w", root, err)
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errors.Errorf("%w: %s", ErrNotFound, root)
		}
		return "", errors.Errorf("resolving %s: %w", root, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.Errorf("checking %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%w: %s is not a directory", ErrNotFound, root)
	}
	return resolved, nil
}

// walkFiles visits every regular file below absRoot and keeps those accepted
// by keep, which receives the slash separated relative path and the base name.
// A non-empty skip names a directory below absRoot whose subtree is left out.
func walkFiles(ctx context.Context, absRoot, skip string, keep func(rel, name string) bool) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	files := []string{}

	err := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			logger.Debug().Err(err).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		if d.IsDir() && skip != "" && path == skip && path != absRoot {
			logger.Debug().Str("path", path).Msg("skipping destination below source")
			return fs.SkipDir
		}

		// directories, symlinks, sockets and devices never match
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return errors.Errorf("computing relative path for %s: %w", path, err)
		}

		if keep(filepath.ToSlash(rel), d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", absRoot, err)
	}

	logger.Debug().Str("root", absRoot).Int("matches", len(files)).Msg("walk complete")
	return files, nil
}

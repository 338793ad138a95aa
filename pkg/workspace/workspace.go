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

// Package workspace creates numbered run directories with named subdirectories.
package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnknownSubdir is returned by Dir for a name the workspace was not created with
	ErrUnknownSubdir = errors.Base("unknown subdirectory")

	// ErrInvalidName is returned for subdirectory names or prefixes that are
	// empty, contain a path separator or point outside the workspace
	ErrInvalidName = errors.Base("invalid name")
)

// 📁 Workspace is a created run directory and its named subdirectories
type Workspace struct {
	Root    string
	subdirs []string
}

// Subdirs returns the subdirectory names in creation order
func (w *Workspace) Subdirs() []string {
	return append([]string(nil), w.subdirs...)
}

// 📂 Dir returns the path of the named subdirectory
func (w *Workspace) Dir(name string) (string, error) {
	for _, s := range w.subdirs {
		if s == name {
			return filepath.Join(w.Root, name), nil
		}
	}
	return "", errors.Errorf("%w: %q (available: %s)", ErrUnknownSubdir, name, strings.Join(w.subdirs, ", "))
}

func (w *Workspace) String() string {
	return fmt.Sprintf("Workspace(root=%s, subdirs=[%s])", w.Root, strings.Join(w.subdirs, ", "))
}

// checkName rejects names that would not land directly below the workspace
func checkName(kind, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Errorf("%w: empty %s", ErrInvalidName, kind)
	case strings.ContainsAny(name, `/\`):
		return errors.Errorf("%w: %s %q contains a path separator", ErrInvalidName, kind, name)
	case name == "." || name == "..":
		return errors.Errorf("%w: %s %q", ErrInvalidName, kind, name)
	}
	return nil
}

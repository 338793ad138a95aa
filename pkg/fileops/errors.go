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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotFound is returned when a root directory does not exist
	ErrNotFound = errors.Base("root not found")

	// ErrInvalidPattern is returned for empty or malformed glob patterns
	ErrInvalidPattern = errors.Base("invalid pattern")

	// ErrTransfer is matched by every *TransferError
	ErrTransfer = errors.Base("transfer failed")
)

// 🚦 Stage is the step of a single file transfer that failed
type Stage int

const (
	StageCopy   Stage = iota // copying bytes to the destination
	StageRemove              // removing the source after a successful copy
)

func (s Stage) String() string {
	switch s {
	case StageCopy:
		return "copy"
	case StageRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ❌ TransferError records a failed file within a bulk copy or move
type TransferError struct {
	Source string // absolute source path
	Dest   string // computed destination path
	Stage  Stage  // step that failed
	Err    error  // underlying cause
}

func (e *TransferError) Error() string {
	if e.Stage == StageRemove {
		return fmt.Sprintf("%s: copied to %s but not removed: %v", e.Source, e.Dest, e.Err)
	}
	if e.Dest == "" {
		return fmt.Sprintf("%s: %s failed: %v", e.Source, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s to %s failed: %v", e.Source, e.Stage, e.Dest, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrTransfer) match any transfer error
func (e *TransferError) Is(target error) bool {
	return target == ErrTransfer
}

// CopiedNotRemoved reports whether the destination holds a full copy while the
// source is still present
func (e *TransferError) CopiedNotRemoved() bool {
	return e.Stage == StageRemove
}

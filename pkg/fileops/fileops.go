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
	"gitlab.com/tozd/go/errors"
)

// 📢 Logger receives per-file progress messages
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// 🔧 Option configures Ops
type Option func(*Ops)

// WithLogger reports every transferred and failed file to l
func WithLogger(l Logger) Option {
	return func(o *Ops) {
		o.logger = l
	}
}

// 📂 Ops finds, copies and moves files below a root directory.
// It keeps no state between calls.
type Ops struct {
	logger Logger
}

// 🏭 New creates a new Ops
func New(opts ...Option) *Ops {
	o := &Ops{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// 🔀 Mode selects between copying and moving
type Mode int

const (
	ModeCopy Mode = iota
	ModeMove
)

func (m Mode) String() string {
	if m == ModeMove {
		return "move"
	}
	return "copy"
}

// 📦 Transfer is a source file and the destination it was written to
type Transfer struct {
	Source string
	Dest   string
}

// 📋 TransferResult is the outcome of one Copy or Move call
type TransferResult struct {
	Mode        Mode
	SourceRoot  string
	DestRoot    string
	Transferred []Transfer
	Errors      []*TransferError
}

// OK reports whether every matched file was transferred
func (r *TransferResult) OK() bool {
	return len(r.Errors) == 0
}

// Err joins the per-file errors, or returns nil when there are none
func (r *TransferResult) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Partial returns the files that were copied but whose source could not be removed
func (r *TransferResult) Partial() []*TransferError {
	var out []*TransferError
	for _, e := range r.Errors {
		if e.CopiedNotRemoved() {
			out = append(out, e)
		}
	}
	return out
}

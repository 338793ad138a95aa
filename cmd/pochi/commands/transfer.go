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

package commands

import (
	"context"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pochi/cmd/pochi/opts"
	"github.com/walteh/pochi/pkg/fileops"
	"github.com/walteh/pochi/pkg/log"
)

// ErrTransferFailed is returned when at least one file could not be transferred
var ErrTransferFailed = errors.Base("some files were not transferred")

type transferFunc func(ctx context.Context, sourceRoot, destRoot, pattern string) (*fileops.TransferResult, error)

// 📋 NewCopyCmd creates the copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	return newTransferCmd(o, "copy", "Copy files matching PATTERN from SRC to DST",
		`copy copies every file below SRC matching PATTERN to the same relative
path below DST. Existing files are replaced, SRC is left untouched.`,
		func() transferFunc { return o.Pochi.Copy })
}

// 🚚 NewMoveCmd creates the move command
func NewMoveCmd(o *opts.RootOpts) *cobra.Command {
	return newTransferCmd(o, "move", "Move files matching PATTERN from SRC to DST",
		`move copies every file below SRC matching PATTERN to the same relative
path below DST and removes the source once its copy succeeded.`,
		func() transferFunc { return o.Pochi.Move })
}

// o.Pochi is only set once the root command ran, so the method is looked up late
func newTransferCmd(o *opts.RootOpts, use, short, long string, fn func() transferFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SRC DST PATTERN",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := fn()(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			log.FromContext(cmd.Context()).Debugf("%s: %d transferred, %d failed", use, len(res.Transferred), len(res.Errors))
			o.UserLogger.LogTransfer(res)
			if !res.OK() {
				return errors.Errorf("%w: %d of %d", ErrTransferFailed, len(res.Errors), len(res.Errors)+len(res.Transferred))
			}
			return nil
		},
	}
}

// 🪞 NewMirrorCmd creates the mirror command
func NewMirrorCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "mirror SRC DST PATTERN",
		Short: "Create the DST directories copy would create, without copying",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := o.Pochi.Mirror(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			o.UserLogger.LogMirror(args[0], pairs)
			return nil
		},
	}
}

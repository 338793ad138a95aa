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
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pochi/cmd/pochi/opts"
)

// 🔍 NewFindCmd creates the find command
func NewFindCmd(o *opts.RootOpts) *cobra.Command {
	var exts []string

	cmd := &cobra.Command{
		Use:   "find ROOT [PATTERN]",
		Short: "List files below ROOT matching a glob pattern",
		Long: `find prints the files below ROOT whose path relative to ROOT matches
PATTERN, one per line in sorted order. Patterns support ** for any number of
directories. With --ext, files are selected by extension instead.`,
		Example: `  pochi find data "train/**/*.jpg"
  pochi find data --ext .jpg --ext .png`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var files []string
			var err error
			switch {
			case len(exts) > 0 && len(args) == 2:
				return errors.New("PATTERN and --ext are mutually exclusive")
			case len(exts) > 0:
				files, err = o.Pochi.FindExtensions(ctx, args[0], exts...)
			case len(args) == 2:
				files, err = o.Pochi.Find(ctx, args[0], args[1])
			default:
				return errors.New("either PATTERN or --ext is required")
			}
			if err != nil {
				return err
			}

			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&exts, "ext", "e", nil, "file extension to select, repeatable")
	return cmd
}

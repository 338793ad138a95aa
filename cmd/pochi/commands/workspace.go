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
	"github.com/spf13/cobra"

	"github.com/walteh/pochi/cmd/pochi/opts"
	"github.com/walteh/pochi/pkg/workspace"
)

// 🏗️ NewWorkspaceCmd creates the workspace command
func NewWorkspaceCmd(o *opts.RootOpts) *cobra.Command {
	var prefix string
	var subdirs []string

	cmd := &cobra.Command{
		Use:   "workspace [BASE]",
		Short: "Create a new numbered run directory",
		Long: `workspace creates BASE/yyyymmdd_NNN, or BASE/<prefix>N with --prefix,
using the next free number, and the requested subdirectories inside it.
BASE, --prefix and --subdir default to the workspace section of the
settings file.`,
		Example: `  pochi workspace runs --subdir models --subdir logs
  pochi workspace runs --prefix exp`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := o.Settings.Workspace
			wopts := workspace.Options{
				BaseDir: defaults.BaseDir,
				Prefix:  defaults.Prefix,
				Subdirs: defaults.Subdirs,
			}
			if len(args) == 1 {
				wopts.BaseDir = args[0]
			}
			if cmd.Flags().Changed("prefix") {
				wopts.Prefix = prefix
			}
			if cmd.Flags().Changed("subdir") {
				wopts.Subdirs = subdirs
			}

			ws, err := o.Pochi.Workspace(cmd.Context(), wopts)
			if err != nil {
				return err
			}
			return o.UserLogger.LogWorkspace(ws)
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "name workspaces <prefix>1, <prefix>2, ... instead of by date")
	cmd.Flags().StringSliceVarP(&subdirs, "subdir", "s", nil, "subdirectory to create, repeatable")
	return cmd
}

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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pochi/cmd/pochi/commands"
	"github.com/walteh/pochi/cmd/pochi/opts"
	"github.com/walteh/pochi/pkg/log"
)

type rootFlags struct {
	configFile string
	debug      bool
}

// run executes the CLI and returns the process exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, o := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if cerr := o.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		// transfer failures were already reported file by file
		if !errors.Is(err, commands.ErrTransferFailed) {
			opts.NewUserLogger(ctx, stderr).LogValidation(false, "Command failed", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *opts.RootOpts) {
	flags := &rootFlags{}
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "pochi",
		Short: "File, workspace and config helpers for experiment runs",
		Long: `pochi finds, copies and moves files by glob pattern while keeping their
directory layout, creates numbered run workspaces and inspects YAML, JSON
and HCL configuration files.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug, stderr)

			settings, err := opts.LoadSettings(ctx, flags.configFile)
			if err != nil {
				return err
			}
			if err := o.Init(ctx, settings, flags.debug, cmd.OutOrStdout(), stderr); err != nil {
				return errors.Errorf("initializing: %w", err)
			}

			cmd.SetContext(log.NewContext(ctx, o.Logger))
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewFindCmd(o),
		commands.NewCopyCmd(o),
		commands.NewMoveCmd(o),
		commands.NewMirrorCmd(o),
		commands.NewWorkspaceCmd(o),
		commands.NewConfigCmd(o),
		newVersionCmd(),
	)

	return cmd, o
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "settings file path (yaml, json or hcl)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging attaches a zerolog console logger to ctx and makes it the
// default for contexts without one
func setupLogging(ctx context.Context, debug bool, w io.Writer) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}

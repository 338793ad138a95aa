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

package opts

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/pochi/pkg/fileops"
	"github.com/walteh/pochi/pkg/log"
	"github.com/walteh/pochi/pkg/workspace"
)

// 📢 UserLogger prints command results for people, and mirrors them to
// zerolog for debugging
type UserLogger struct {
	out io.Writer
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a user logger writing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		out: out,
		log: *zerolog.Ctx(ctx),
	}
}

func (u *UserLogger) print(p *pterm.PrefixPrinter, msg string) {
	fmt.Fprint(u.out, p.Sprintln(msg))
}

// 📊 LogStateChange prints a neutral status message
func (u *UserLogger) LogStateChange(description string) {
	u.print(pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}), description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation prints a success, a warning or, when err is set, a failure
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.print(pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}), description)
		u.log.Info().Msg(description)
	case err != nil:
		u.print(pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}), description)
		u.print(&pterm.Error, err.Error())
		u.log.Error().Err(err).Msg(description)
	default:
		u.print(pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}), description)
		u.log.Warn().Msg(description)
	}
}

// 📋 LogTransfer prints one line per file followed by a summary
func (u *UserLogger) LogTransfer(res *fileops.TransferResult) {
	mode := res.Mode.String()
	done := "copied"
	if res.Mode == fileops.ModeMove {
		done = "moved"
	}

	for _, t := range res.Transferred {
		fmt.Fprintln(u.out, log.FormatFileOperation(log.FileOperation{
			Path:   relTo(res.SourceRoot, t.Source),
			Mode:   mode,
			Status: done,
		}))
	}
	for _, e := range res.Errors {
		op := log.FileOperation{
			Path:   relTo(res.SourceRoot, e.Source),
			Mode:   mode,
			Status: e.Stage.String() + " failed",
		}
		if e.CopiedNotRemoved() {
			op.IsPartial = true
			op.Status = "not removed"
		} else {
			op.IsFailed = true
		}
		fmt.Fprintln(u.out, log.FormatFileOperation(op))
		u.log.Debug().Err(e.Err).Str("source", e.Source).Msg("transfer error")
	}

	total := len(res.Transferred) + len(res.Errors)
	summary := fmt.Sprintf("%s %s -> %s", log.FormatProgress(len(res.Transferred), total), res.SourceRoot, res.DestRoot)
	u.LogValidation(res.OK(), summary, res.Err())
}

// 🪞 LogMirror prints the destination directories prepared for each file
func (u *UserLogger) LogMirror(sourceRoot string, pairs []fileops.Transfer) {
	if abs, err := filepath.Abs(sourceRoot); err == nil {
		sourceRoot = abs
	}
	if resolved, err := filepath.EvalSymlinks(sourceRoot); err == nil {
		sourceRoot = resolved
	}
	for _, p := range pairs {
		fmt.Fprintln(u.out, log.FormatFileOperation(log.FileOperation{
			Path:   relTo(sourceRoot, p.Source),
			Mode:   "mirror",
			Status: filepath.Dir(p.Dest),
		}))
	}
	u.LogValidation(true, fmt.Sprintf("prepared %d files", len(pairs)), nil)
}

// 🏗️ LogWorkspace prints the workspace root and a table of its subdirectories
func (u *UserLogger) LogWorkspace(ws *workspace.Workspace) error {
	u.LogValidation(true, "created "+ws.Root, nil)
	if len(ws.Subdirs()) == 0 {
		return nil
	}

	data := pterm.TableData{{"name", "path"}}
	for _, name := range ws.Subdirs() {
		dir, err := ws.Dir(name)
		if err != nil {
			return err
		}
		data = append(data, []string{name, dir})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(u.out, table)
	return nil
}

// relTo shortens path to be relative to root when possible
func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

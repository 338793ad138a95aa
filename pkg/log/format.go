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

package log

import (
	"fmt"

	"github.com/fatih/color"
)

// 🎨 File line layout
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // base width for the relative path
	modeWidth   = 6  // width for copy/move
	statusWidth = 15 // width for status text
)

// 🎯 FileOperation is one transferred or failed file as shown to the user
type FileOperation struct {
	Path      string // path relative to the source root
	Mode      string // copy or move
	Status    string // short status text
	IsFailed  bool   // the file was not transferred
	IsPartial bool   // copied but the source is still present
}

// 📝 FormatFileOperation renders op as an indented, colored line
func FormatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsPartial:
		symbol = '⟳'
		symbolColor = color.FgYellow
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	modeColor := color.FgBlue
	if op.Mode == "move" {
		modeColor = color.FgMagenta
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(modeColor).Sprint(fmt.Sprintf("%-*s", modeWidth, op.Mode)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📊 FormatProgress renders a done/total counter
func FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ %d/%d files (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ %d/%d files (%.0f%%)", current, total, percentage)
}

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

package workspace

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// DateLayout is the layout of the date part of a dated workspace name
const DateLayout = "20060102"

// 📅 DateString formats t as yyyymmdd
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// 🏷️ DatedName returns the workspace name for date and index, e.g. 20250304_007
func DatedName(date string, index int) string {
	return fmt.Sprintf("%s_%03d", date, index)
}

// 🔢 NextIndex returns one more than the highest index among existing names
// of the form <date>_<index>, or 1 when there are none. Names whose index
// part is not a number are ignored.
func NextIndex(existing []string, date string) int {
	indices := lo.FilterMap(existing, func(name string, _ int) (int, bool) {
		rest, ok := strings.CutPrefix(name, date+"_")
		if !ok {
			return 0, false
		}
		// only the segment up to the next underscore counts
		rest, _, _ = strings.Cut(rest, "_")
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	})
	if len(indices) == 0 {
		return 1
	}
	return lo.Max(indices) + 1
}

// 🔢 NextPrefixIndex returns the smallest n >= 1 for which <prefix><n> is not
// among existing
func NextPrefixIndex(existing []string, prefix string) int {
	taken := lo.SliceToMap(existing, func(name string) (string, struct{}) {
		return name, struct{}{}
	})
	for n := 1; ; n++ {
		if _, ok := taken[prefix+strconv.Itoa(n)]; !ok {
			return n
		}
	}
}

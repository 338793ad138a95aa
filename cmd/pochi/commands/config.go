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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/pochi/cmd/pochi/opts"
	"github.com/walteh/pochi/pkg/config"
	"github.com/walteh/pochi/pkg/log"
)

// 📚 NewConfigCmd creates the config command group
func NewConfigCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration files",
	}
	cmd.AddCommand(newConfigShowCmd(o))
	return cmd
}

func newConfigShowCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Parse FILE and print it as YAML",
		Long: fmt.Sprintf(`show parses FILE with the parser picked by its extension and prints
the resulting document as YAML. HCL expressions are evaluated.

Supported formats: %s`, strings.Join(config.Parsers(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.LoadMap(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(plain(data))
			if err != nil {
				return errors.Errorf("encoding %s: %w", args[0], err)
			}
			log.FromContext(cmd.Context()).Debugf("parsed %s with %d top-level keys", args[0], len(data))
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// plain turns json.Number values back into numbers so they print unquoted
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

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

package config

import (
	"bytes"
	"context"
	"io"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return hasExt(filename, ".yaml", ".yml")
}

// 📝 Parse parses the first YAML document. An empty document is an empty
// mapping.
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (map[string]any, error) {
	var root any
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, errors.Errorf("%w: parsing YAML: %s", ErrInvalid, err)
	}

	switch v := root.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case map[any]any:
		for k := range v {
			if _, ok := k.(string); !ok {
				return nil, errors.Errorf("%w: YAML keys must be strings, got %T key %v", ErrInvalid, k, k)
			}
		}
		return nil, errors.Errorf("%w: YAML keys must be strings", ErrInvalid)
	default:
		return nil, errors.Errorf("%w: YAML root must be a mapping, got %T", ErrInvalid, root)
	}
}

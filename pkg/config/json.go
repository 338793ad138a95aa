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
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return hasExt(filename, ".json")
}

// 📝 Parse parses a JSON object. Numbers are kept as json.Number so integer
// fields can tell 1 from 1.5.
func (p *JSONParser) Parse(ctx context.Context, data []byte) (map[string]any, error) {
	return decodeJSONObject(data)
}

func decodeJSONObject(data []byte) (map[string]any, error) {
	var root any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&root); err != nil {
		return nil, errors.Errorf("%w: parsing JSON: %s", ErrInvalid, err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("%w: unexpected data after the JSON object", ErrInvalid)
	}

	m, ok := root.(map[string]any)
	if !ok {
		return nil, errors.Errorf("%w: JSON root must be an object, got %T", ErrInvalid, root)
	}
	return m, nil
}

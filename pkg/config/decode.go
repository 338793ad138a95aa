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
	"encoding/json"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"gitlab.com/tozd/go/errors"
)

// TagName is the struct tag Decode reads field names from
const TagName = "config"

// 🔧 Defaulter is implemented by schemas that fill in default values.
// SetDefaults runs before decoding, so values from the file win.
type Defaulter interface {
	SetDefaults()
}

// 🔍 Validator is implemented by schemas with checks beyond field types.
// Validate runs after a successful decode.
type Validator interface {
	Validate() error
}

// 📝 Decode copies data into out, which must be a pointer to a struct tagged
// with `config:"name"`.
//
// Decoding is strict: keys without a matching field are rejected and values
// are never converted between kinds, so "1" does not become 1.
func Decode(data map[string]any, out any) error {
	if d, ok := out.(Defaulter); ok {
		d.SetDefaults()
	}

	dec, err := NewDecoder(out)
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return errors.Errorf("%w: %s", ErrInvalid, err)
	}

	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			return errors.Errorf("%w: %s", ErrInvalid, err)
		}
	}
	return nil
}

// 🏭 NewDecoder returns the strict mapstructure decoder Decode uses. out must
// be a non-nil pointer.
func NewDecoder(out any) (*mapstructure.Decoder, error) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          TagName,
		ErrorUnused:      true,
		WeaklyTypedInput: false,
		DecodeHook:       rejectNumberAsString,
	})
	if err != nil {
		return nil, errors.Errorf("building decoder: %w", err)
	}
	return dec, nil
}

var jsonNumberType = reflect.TypeOf(json.Number(""))

// rejectNumberAsString stops json.Number, which has a string kind, from
// satisfying string fields
func rejectNumberAsString(from, to reflect.Type, data any) (any, error) {
	if from == jsonNumberType && to.Kind() == reflect.String {
		return nil, errors.Errorf("expected a string, got number %v", data)
	}
	return data, nil
}

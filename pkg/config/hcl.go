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
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// Only top level attributes are read; nested values are written as object
// expressions:
//
//	name     = "baseline"
//	training = { epochs = 10, lr = 0.001 }
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 🧮 functions available inside expressions. All are pure.
func hclFunctions() map[string]function.Function {
	return map[string]function.Function{
		"upper":  stdlib.UpperFunc,
		"lower":  stdlib.LowerFunc,
		"join":   stdlib.JoinFunc,
		"concat": stdlib.ConcatFunc,
		"format": stdlib.FormatFunc,
		"max":    stdlib.MaxFunc,
		"min":    stdlib.MinFunc,
	}
}

// 📝 Parse evaluates every attribute and converts the result through its JSON
// form, so HCL numbers arrive as json.Number like the JSON parser's
func (p *HCLParser) Parse(ctx context.Context, data []byte) (map[string]any, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: parsing HCL: %s", ErrInvalid, diags.Error())
	}

	attrs, diags := hclFile.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: reading HCL attributes: %s", ErrInvalid, diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: hclFunctions(),
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, errors.Errorf("%w: evaluating %s: %s", ErrInvalid, name, diags.Error())
		}
		values[name] = val
	}

	zerolog.Ctx(ctx).Debug().Int("attributes", len(values)).Msg("evaluated HCL attributes")

	obj := cty.ObjectVal(values)
	raw, err := ctyjson.Marshal(obj, obj.Type())
	if err != nil {
		return nil, errors.Errorf("%w: converting HCL values: %s", ErrInvalid, err)
	}

	return decodeJSONObject(raw)
}

/*
Package config loads declarative configuration files into generic mappings
and decodes them into typed, validated structs.

	        config.yaml / .json / .hcl
	                   |
	            +------+------+
	            |  GetParser  |  by extension
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	+----+----+   +----+----+   +----+----+
	     |             |             |
	     +------ map[string]any -----+
	                   |
	            +------+------+
	            |   Decode    |  defaults, strict decode, Validate
	            +-------------+

🎯 Purpose:
- Read configuration without executing any code
- Reject unknown keys and mistyped values instead of guessing
- Keep format details out of the schema structs

🔄 Flow:
1. GetParser picks a parser from the file extension (ErrUnsupportedFormat)
2. The parser turns the bytes into a mapping (ErrInvalid on syntax or a
   non-mapping root)
3. Decode calls SetDefaults, decodes with `config` tags, then Validate

🤝 Interfaces:
- Parser: format-specific parsing, extend with Register
- Defaulter: fills defaults before decoding
- Validator: checks beyond field types after decoding

🔍 Example:

	type Training struct {
		Epochs int     `config:"epochs"`
		LR     float64 `config:"lr"`
	}

	func (t *Training) SetDefaults() { t.LR = 0.001 }

	func (t *Training) Validate() error {
		if t.Epochs <= 0 {
			return errors.New("epochs must be positive")
		}
		return nil
	}

	var cfg Training
	if err := config.Load(ctx, "train.yaml", &cfg); err != nil {
		return err
	}
*/
package config

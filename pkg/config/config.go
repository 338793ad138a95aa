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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnsupportedFormat is returned when no parser accepts the file name
	ErrUnsupportedFormat = errors.Base("unsupported config format")

	// ErrNotFound is returned when the config file does not exist
	ErrNotFound = errors.Base("config file not found")

	// ErrInvalid is returned for syntax errors, a non-mapping root and schema mismatches
	ErrInvalid = errors.Base("invalid config")
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes into a generic mapping
	Parse(ctx context.Context, data []byte) (map[string]any, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers   []Parser
	parsersMu sync.RWMutex
)

// 📝 Register registers a parser. Later registrations are consulted first, so
// a custom parser can take over an extension from a built-in one.
func Register(p Parser) {
	parsersMu.Lock()
	defer parsersMu.Unlock()
	parsers = append([]Parser{p}, parsers...)
}

// 🎯 GetParser returns a parser that can handle the given file, or nil
func GetParser(filename string) Parser {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Parsers returns the type names of the registered parsers
func Parsers() []string {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	return lo.Map(parsers, func(p Parser, _ int) string {
		return strings.TrimPrefix(fmt.Sprintf("%T", p), "*")
	})
}

// hasExt reports whether filename ends with one of exts, ignoring case
func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	return lo.Contains(exts, ext)
}

// 📂 LoadMap reads and parses path without any schema validation
func LoadMap(ctx context.Context, path string) (map[string]any, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("%w: %s (registered: %s)", ErrUnsupportedFormat, path, strings.Join(Parsers(), ", "))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	m, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("keys", len(m)).Msg("configuration parsed")
	return m, nil
}

// 🎯 Load reads path and decodes it into out, see Decode
func Load(ctx context.Context, path string, out any) error {
	m, err := LoadMap(ctx, path)
	if err != nil {
		return err
	}
	if err := Decode(m, out); err != nil {
		return errors.Errorf("loading %s: %w", path, err)
	}
	return nil
}

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

// Package registry builds components by name from keyword arguments, so a
// pipeline can be described as a list of config entries.
package registry

import (
	"strings"
	"sync"

	"github.com/samber/lo"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pochi/pkg/config"
)

var (
	// ErrDuplicate is returned when a name is registered twice
	ErrDuplicate = errors.Base("already registered")

	// ErrUnknown is returned when creating a name that was never registered
	ErrUnknown = errors.Base("not registered")

	// ErrMissingName is returned for a config entry without a "name" key
	ErrMissingName = errors.Base("missing name")
)

// NameKey is the config entry key holding the registered name
const NameKey = "name"

// 🏭 Factory builds a T from keyword arguments. Use DecodeArgs to turn args
// into an options struct.
type Factory[T any] func(args map[string]any) (T, error)

// 📚 Registry maps names to factories for one kind of component, e.g.
// processors or models
type Registry[T any] struct {
	name string

	mu        sync.RWMutex
	factories map[string]Factory[T]
	order     []string
}

// 🏭 New creates an empty registry called name
func New[T any](name string) *Registry[T] {
	return &Registry[T]{
		name:      name,
		factories: make(map[string]Factory[T]),
	}
}

// Name returns the registry name
func (r *Registry[T]) Name() string {
	return r.name
}

// 📝 Register adds f under name
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	if strings.TrimSpace(name) == "" {
		return errors.Errorf("%s: empty name", r.name)
	}
	if f == nil {
		return errors.Errorf("%s: nil factory for %q", r.name, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return errors.Errorf("%s: %q %w", r.name, name, ErrDuplicate)
	}
	r.factories[name] = f
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for package init code; it panics on error
func (r *Registry[T]) MustRegister(name string, f Factory[T]) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// 🎯 Create builds the component registered under name
func (r *Registry[T]) Create(name string, args map[string]any) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, errors.Errorf("%s: %q %w (available: %s)", r.name, name, ErrUnknown, strings.Join(r.Keys(), ", "))
	}

	if args == nil {
		args = map[string]any{}
	}
	v, err := f(args)
	if err != nil {
		var zero T
		return zero, errors.Errorf("%s: creating %q: %w", r.name, name, err)
	}
	return v, nil
}

// 📋 CreateFromConfig builds one component per entry. Each entry names its
// factory under NameKey; the remaining keys are the arguments. The first
// failing entry aborts the whole list.
func (r *Registry[T]) CreateFromConfig(entries []map[string]any) ([]T, error) {
	out := make([]T, 0, len(entries))
	for i, entry := range entries {
		raw, ok := entry[NameKey]
		if !ok {
			return nil, errors.Errorf("%s: entry %d: %w", r.name, i, ErrMissingName)
		}
		name, ok := raw.(string)
		if !ok {
			return nil, errors.Errorf("%s: entry %d: %q must be a string, got %T", r.name, i, NameKey, raw)
		}

		args := lo.OmitByKeys(entry, []string{NameKey})
		v, err := r.Create(name, args)
		if err != nil {
			return nil, errors.Errorf("entry %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Keys returns the registered names in registration order
func (r *Registry[T]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Has reports whether name is registered
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Len returns the number of registered names
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// 📝 DecodeArgs decodes factory arguments into out with the same strict
// rules as config.Decode: unknown keys and mistyped values are errors,
// SetDefaults and Validate run when out implements them
func DecodeArgs(args map[string]any, out any) error {
	return config.Decode(args, out)
}

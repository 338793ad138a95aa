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
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏭 Factory creates named loggers sharing one console and caches them by
// name and log directory
type Factory struct {
	console io.Writer
	opts    []Option

	mu      sync.Mutex
	loggers map[string]*Logger
	files   []*os.File
}

// 🏭 NewFactory creates a factory writing console lines to console. opts are
// applied to every logger it creates.
func NewFactory(console io.Writer, opts ...Option) *Factory {
	return &Factory{
		console: console,
		opts:    opts,
		loggers: make(map[string]*Logger),
	}
}

// 📄 FileName returns the log file name used for a logger name
func FileName(name string) string {
	return strings.ReplaceAll(name, ".", "_") + ".log"
}

// 🎯 Create returns the logger for name. When dir is set, records are also
// appended to dir/FileName(name). A second call with the same name and dir
// returns the same instance, whatever level it asks for.
func (f *Factory) Create(name, dir string, level zerolog.Level) (*Logger, error) {
	key := name + ":" + dir

	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.loggers[key]; ok {
		return l, nil
	}

	opts := append([]Option{}, f.opts...)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Errorf("creating log directory %s: %w", dir, err)
		}
		path := filepath.Join(dir, FileName(name))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, errors.Errorf("opening log file %s: %w", path, err)
		}
		f.files = append(f.files, file)
		opts = append(opts, WithFile(file))
	}

	l := New(name, f.console, level, opts...)
	f.loggers[key] = l
	return l, nil
}

// 🧹 Close closes every log file opened by the factory and forgets the
// cached loggers
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for _, file := range f.files {
		if err := file.Close(); err != nil {
			errs = append(errs, errors.Errorf("closing %s: %w", file.Name(), err))
		}
	}
	f.files = nil
	f.loggers = make(map[string]*Logger)
	return errors.Join(errs...)
}

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

package opts

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pochi/pkg/config"
	"github.com/walteh/pochi/pkg/log"
	"github.com/walteh/pochi/pkg/pochi"
)

// RootOpts contains shared options used by all commands. It is filled in
// before a command runs, so commands must only read it from RunE.
type RootOpts struct {
	Settings   *Settings
	Pochi      *pochi.Pochi
	Logger     *log.Logger
	UserLogger *UserLogger

	factory *log.Factory
}

// 🔧 Settings is the optional file passed with --config
type Settings struct {
	LogLevel  string            `config:"log_level"`
	LogDir    string            `config:"log_dir"`
	Workspace WorkspaceSettings `config:"workspace"`
}

// WorkspaceSettings are the defaults for the workspace command
type WorkspaceSettings struct {
	BaseDir string   `config:"base_dir"`
	Prefix  string   `config:"prefix"`
	Subdirs []string `config:"subdirs"`
}

func (s *Settings) SetDefaults() {
	s.LogLevel = "info"
}

func (s *Settings) Validate() error {
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return errors.Errorf("log_level: %w", err)
	}
	return nil
}

// 📚 LoadSettings reads path, or returns the defaults when path is empty
func LoadSettings(ctx context.Context, path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		s.SetDefaults()
		return s, nil
	}
	if err := config.Load(ctx, path, s); err != nil {
		return nil, errors.Errorf("loading settings: %w", err)
	}
	return s, nil
}

// 🏭 Init fills o from settings. Progress lines go to console, the user
// report to out. debug forces the debug level whatever the settings say.
func (o *RootOpts) Init(ctx context.Context, settings *Settings, debug bool, out, console io.Writer) error {
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if debug {
		level = zerolog.DebugLevel
	}

	factory := log.NewFactory(console)
	logger, err := factory.Create("pochi", settings.LogDir, level)
	if err != nil {
		return errors.Errorf("creating logger: %w", err)
	}

	o.Settings = settings
	o.Logger = logger
	o.Pochi = pochi.New(pochi.Options{Logger: logger})
	o.UserLogger = NewUserLogger(ctx, out)
	o.factory = factory
	return nil
}

// 🧹 Close releases the log files opened by Init
func (o *RootOpts) Close() error {
	if o.factory == nil {
		return nil
	}
	return o.factory.Close()
}

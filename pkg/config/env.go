// umu-wrapper
// Copyright (c) 2026 The umu-wrapper Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of umu-wrapper.
//
// umu-wrapper is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// umu-wrapper is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with umu-wrapper.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read into Settings.
const EnvPrefix = "UMUWRAPPER_"

// Settings are the process-level options which can be set from the
// environment. CLI flags override them after parsing.
type Settings struct {
	ConfigPath string `env:"CONFIG_PATH"`
	ConfigDir  string `env:"CONFIG_DIR"`
	PrefixRoot string `env:"PREFIX_ROOT"`
	Launcher   string `env:"LAUNCHER" envDefault:"umu-run"`
	LogDir     string `env:"LOG_DIR"`
	Strict     bool   `env:"STRICT"`
	Debug      bool   `env:"DEBUG"`
}

// ParseSettings reads Settings from environ, or from the process environment
// when environ is nil. Unset paths are filled with XDG defaults.
func ParseSettings(environ map[string]string) (Settings, error) {
	var s Settings
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}

	if s.ConfigPath == "" {
		s.ConfigPath = DefaultConfigPath()
	}
	if s.ConfigDir == "" {
		s.ConfigDir = DefaultDropInDir()
	}
	if s.PrefixRoot == "" {
		s.PrefixRoot = DefaultPrefixRoot()
	}
	if s.LogDir == "" {
		s.LogDir = filepath.Join(xdg.StateHome, AppName)
	}
	if s.Launcher == "" {
		s.Launcher = LauncherExe
	}

	return s, nil
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, CfgFile)
}

func DefaultDropInDir() string {
	return filepath.Join(xdg.ConfigHome, DropInDir)
}

// DefaultPrefixRoot is the directory under which derived Wine prefixes are
// created, one per game ID.
func DefaultPrefixRoot() string {
	return filepath.Join(xdg.Home, PrefixSubdir)
}

// HomeDir is used to expand "~/" in configured paths.
func HomeDir() string {
	return xdg.Home
}

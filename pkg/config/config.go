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

// Package config defines the configuration records read from umu-wrapper
// sources, and loads those sources from TOML or YAML files.
//
// A source is one parsed document. It may hold a [global] table, any number
// of [[template]] entries and any number of [[profile]] entries:
//
//	[global]
//	proton = "~/.steam/steam/compatibilitytools.d/GE-Proton9-20"
//
//	[[template]]
//	name = "default"
//	store = "gog"
//
//	[[profile]]
//	name = "game1"
//	template = "default"
//	id = "umu-1234567"
//	exe = "game1.exe"
//	args = ["-skip-intro"]
//
// Merging sources and resolving profiles is the job of the store and
// resolver packages. Nothing in this package applies precedence rules.
package config

import (
	"maps"
	"slices"
)

// Global holds the lowest precedence values shared by every profile.
type Global struct {
	Prefix          string `toml:"prefix,omitempty" mapstructure:"prefix"`
	Proton          string `toml:"proton,omitempty" mapstructure:"proton"`
	ProtonVerb      string `toml:"proton_verb,omitempty" mapstructure:"proton_verb"`
	DefaultTemplate string `toml:"default_template,omitempty" mapstructure:"default_template"`
}

// Template is a named, reusable bundle of launch settings.
type Template struct {
	NoProton   *bool             `toml:"no_proton,omitempty" mapstructure:"no_proton"`
	Env        map[string]string `toml:"env,omitempty" mapstructure:"env" validate:"omitempty,dive,keys,envkey,endkeys"`
	Name       string            `toml:"name" mapstructure:"name" validate:"nonblank"`
	Prefix     string            `toml:"prefix,omitempty" mapstructure:"prefix"`
	Proton     string            `toml:"proton,omitempty" mapstructure:"proton"`
	Store      string            `toml:"store,omitempty" mapstructure:"store"`
	ProtonVerb string            `toml:"proton_verb,omitempty" mapstructure:"proton_verb"`
}

// Profile is a concrete game launch specification. ID and Exe are required
// and, together with Args, can only be set on a profile. The remaining
// optional fields override whatever the template or global layer provide.
type Profile struct {
	NoProton   *bool             `toml:"no_proton,omitempty" mapstructure:"no_proton"`
	Env        map[string]string `toml:"env,omitempty" mapstructure:"env" validate:"omitempty,dive,keys,envkey,endkeys"`
	Name       string            `toml:"name" mapstructure:"name" validate:"nonblank"`
	Template   string            `toml:"template,omitempty" mapstructure:"template"`
	ID         string            `toml:"id" mapstructure:"id" validate:"nonblank,pathsegment"`
	Exe        string            `toml:"exe" mapstructure:"exe" validate:"nonblank"`
	Prefix     string            `toml:"prefix,omitempty" mapstructure:"prefix"`
	Proton     string            `toml:"proton,omitempty" mapstructure:"proton"`
	Store      string            `toml:"store,omitempty" mapstructure:"store"`
	ProtonVerb string            `toml:"proton_verb,omitempty" mapstructure:"proton_verb"`
	Args       []string          `toml:"args,omitempty" mapstructure:"args"`
}

// Source is a single parsed configuration document. Origin names where it
// came from (usually a file path) and is only used in diagnostics.
type Source struct {
	Origin    string     `toml:"-" mapstructure:"-"`
	Global    Global     `toml:"global" mapstructure:"global"`
	Templates []Template `toml:"template,omitempty" mapstructure:"template"`
	Profiles  []Profile  `toml:"profile,omitempty" mapstructure:"profile"`
}

// Clone returns a deep copy of the template.
//
//nolint:gocritic // template struct copied for immutability
func (t Template) Clone() Template {
	t.Env = maps.Clone(t.Env)
	if t.NoProton != nil {
		v := *t.NoProton
		t.NoProton = &v
	}
	return t
}

// Clone returns a deep copy of the profile.
//
//nolint:gocritic // profile struct copied for immutability
func (p Profile) Clone() Profile {
	p.Args = slices.Clone(p.Args)
	p.Env = maps.Clone(p.Env)
	if p.NoProton != nil {
		v := *p.NoProton
		p.NoProton = &v
	}
	return p
}

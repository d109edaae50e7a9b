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

// Package launch holds the resolved launch descriptor and runs umu-run
// with it.
package launch

import (
	"maps"
	"slices"
)

// Params is the plain form of a Descriptor, used to build one and to
// serialize it for display.
type Params struct {
	Env        map[string]string `json:"env,omitempty" toml:"env,omitempty"`
	Profile    string            `json:"profile" toml:"profile"`
	ID         string            `json:"id" toml:"id"`
	Exe        string            `json:"exe" toml:"exe"`
	Prefix     string            `json:"prefix" toml:"prefix"`
	Proton     string            `json:"proton" toml:"proton"`
	Store      string            `json:"store" toml:"store"`
	ProtonVerb string            `json:"proton_verb,omitempty" toml:"proton_verb,omitempty"`
	Args       []string          `json:"args" toml:"args"`
	NoProton   bool              `json:"no_proton,omitempty" toml:"no_proton,omitempty"`
}

// Descriptor is a fully resolved set of launch parameters. It is immutable:
// accessors return copies and WithCommand returns a new value.
type Descriptor struct {
	p Params
}

// NewDescriptor copies p into a new Descriptor. Nil args become an empty
// slice.
//
//nolint:gocritic // params copied for immutability
func NewDescriptor(p Params) Descriptor {
	return Descriptor{p: cloneParams(p)}
}

func cloneParams(p Params) Params {
	if p.Args == nil {
		p.Args = []string{}
	} else {
		p.Args = slices.Clone(p.Args)
	}
	p.Env = maps.Clone(p.Env)
	return p
}

func (d Descriptor) Profile() string    { return d.p.Profile }
func (d Descriptor) ID() string         { return d.p.ID }
func (d Descriptor) Exe() string        { return d.p.Exe }
func (d Descriptor) Prefix() string     { return d.p.Prefix }
func (d Descriptor) Proton() string     { return d.p.Proton }
func (d Descriptor) Store() string      { return d.p.Store }
func (d Descriptor) ProtonVerb() string { return d.p.ProtonVerb }
func (d Descriptor) NoProton() bool     { return d.p.NoProton }

// Args returns a copy of the game arguments.
func (d Descriptor) Args() []string {
	return slices.Clone(d.p.Args)
}

// Env returns a copy of the extra environment variables.
func (d Descriptor) Env() map[string]string {
	return maps.Clone(d.p.Env)
}

// Params returns a copy of the descriptor in plain form.
func (d Descriptor) Params() Params {
	return cloneParams(d.p)
}

// WithCommand returns a copy of d running exe with args instead.
func (d Descriptor) WithCommand(exe string, args []string) Descriptor {
	p := cloneParams(d.p)
	p.Exe = exe
	p.Args = args
	return NewDescriptor(p)
}

// Equal reports whether both descriptors hold the same values.
func (d Descriptor) Equal(other Descriptor) bool {
	a, b := d.p, other.p
	return a.Profile == b.Profile &&
		a.ID == b.ID &&
		a.Exe == b.Exe &&
		a.Prefix == b.Prefix &&
		a.Proton == b.Proton &&
		a.Store == b.Store &&
		a.ProtonVerb == b.ProtonVerb &&
		a.NoProton == b.NoProton &&
		slices.Equal(a.Args, b.Args) &&
		maps.Equal(a.Env, b.Env)
}

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

package launch

import (
	"slices"
	"strings"
)

// Environment variables understood by umu-run.
const (
	EnvGameID     = "GAMEID"
	EnvPrefix     = "WINEPREFIX"
	EnvProtonPath = "PROTONPATH"
	EnvStore      = "STORE"
	EnvProtonVerb = "PROTON_VERB"
	EnvNoProton   = "NO_PROTON"
)

var reservedEnv = []string{
	EnvGameID,
	EnvPrefix,
	EnvProtonPath,
	EnvStore,
	EnvProtonVerb,
	EnvNoProton,
}

// IsReserved reports whether key is set from the descriptor's own fields
// and so cannot be overridden by extra env.
func IsReserved(key string) bool {
	return slices.Contains(reservedEnv, strings.ToUpper(key))
}

// Environ returns the KEY=VALUE pairs handed to umu-run for d. Extra env
// comes first, sorted by key, followed by the launcher variables so they
// take precedence when the list is appended to a parent environment.
func Environ(d Descriptor) []string {
	extra := d.Env()
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if IsReserved(k) {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := make([]string, 0, len(keys)+len(reservedEnv))
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}

	env = append(env,
		EnvGameID+"="+d.ID(),
		EnvPrefix+"="+d.Prefix(),
	)
	if d.Store() != "" {
		env = append(env, EnvStore+"="+d.Store())
	}

	if d.NoProton() {
		env = append(env, EnvNoProton+"=1")
		return env
	}

	if d.Proton() != "" {
		env = append(env, EnvProtonPath+"="+d.Proton())
	}
	if d.ProtonVerb() != "" {
		env = append(env, EnvProtonVerb+"="+d.ProtonVerb())
	}

	return env
}

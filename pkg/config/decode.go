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

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
)

// legacyKeys maps older profile keys to their current names.
var legacyKeys = map[string]string{
	"game_id": "id",
}

// Decode converts an already-parsed key/value document into a Source. The
// serialization format does not matter as long as tables arrive as
// map[string]any and arrays as []any. Unknown keys are logged and ignored.
func Decode(origin string, raw map[string]any) (Source, error) {
	src := Source{Origin: origin}
	if raw == nil {
		return src, nil
	}

	normalizeProfiles(raw)

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           &src,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Source{}, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := dec.Decode(raw); err != nil {
		return Source{}, &ParseError{Path: origin, Err: err}
	}

	for _, key := range md.Unused {
		log.Warn().Str("source", origin).Msgf("ignoring unknown config key: %s", key)
	}

	// Origin has no tag to decode into, make sure it survives.
	src.Origin = origin

	return src, nil
}

func normalizeProfiles(raw map[string]any) {
	profiles, ok := raw["profile"].([]any)
	if !ok {
		return
	}
	for _, p := range profiles {
		entry, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for old, current := range legacyKeys {
			v, found := entry[old]
			if !found {
				continue
			}
			if _, set := entry[current]; !set {
				entry[current] = v
			}
			delete(entry, old)
		}
	}
}

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

package store

import (
	"slices"

	"github.com/hbollon/go-edlib"
)

const (
	// minSuggestSimilarity is the Jaro-Winkler score a name needs to be
	// offered as a suggestion.
	minSuggestSimilarity = 0.8
	maxSuggestions       = 3
)

type suggestion struct {
	name       string
	similarity float32
}

// Suggest returns up to three defined names of the given kind which are
// close to name, best match first.
func (s *Store) Suggest(kind Kind, name string) []string {
	var candidates []string
	switch kind {
	case KindProfile:
		candidates = s.ProfileNames()
	case KindTemplate:
		candidates = s.TemplateNames()
	default:
		return nil
	}
	return closestNames(name, candidates)
}

func closestNames(query string, candidates []string) []string {
	if query == "" {
		return nil
	}

	var matches []suggestion
	for _, candidate := range candidates {
		if candidate == query {
			continue
		}
		similarity := edlib.JaroWinklerSimilarity(query, candidate)
		if similarity >= minSuggestSimilarity {
			matches = append(matches, suggestion{name: candidate, similarity: similarity})
		}
	}

	// candidates arrive sorted, so ties keep lexical order
	slices.SortStableFunc(matches, func(a, b suggestion) int {
		switch {
		case a.similarity > b.similarity:
			return -1
		case a.similarity < b.similarity:
			return 1
		default:
			return 0
		}
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

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

package resolver

import (
	"errors"
	"slices"
	"testing"

	"github.com/korewaChino/umu-wrapper/pkg/config"
	"github.com/korewaChino/umu-wrapper/pkg/store"
	"pgregory.net/rapid"
)

// rawIDGen draws ids including the "." and ".." entries that must be
// rejected.
func rawIDGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`umu-[a-z0-9]{1,12}`),
		rapid.StringMatching(`[a-z0-9.\-]{1,8}`),
		rapid.SampledFrom([]string{".", "..", "...", ".a", "a."}),
	)
}

func idGen() *rapid.Generator[string] {
	return rawIDGen().Filter(func(id string) bool {
		return id != "." && id != ".."
	})
}

func pathGen() *rapid.Generator[string] {
	return rapid.StringMatching(`(/[a-z0-9_]{1,8}){1,4}`)
}

func mustResolver(t *rapid.T, src config.Source) *Resolver {
	st, err := store.Load([]config.Source{src})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(st, Options{PrefixRoot: testRoot})
}

// TestPropertyDerivedPrefix checks that a bare profile always lands in its
// own directory directly under the prefix root.
func TestPropertyDerivedPrefix(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		id := rawIDGen().Draw(t, "id")

		r := mustResolver(t, config.Source{
			Profiles: []config.Profile{{Name: "game", ID: id, Exe: "game.exe"}},
		})
		d, err := r.Resolve("game")

		if id == "." || id == ".." {
			var vErr *store.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("id %q: expected validation error, got %v", id, err)
			}
			return
		}

		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if want := testRoot + "/" + id; d.Prefix() != want {
			t.Fatalf("prefix %q, want %q", d.Prefix(), want)
		}
	})
}

// TestPropertyTemplatePrefixBeatsGlobal checks that a template prefix is
// used whatever the global prefix is.
func TestPropertyTemplatePrefixBeatsGlobal(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		tmplPrefix := pathGen().Draw(t, "templatePrefix")
		globalPrefix := rapid.OneOf(rapid.Just(""), pathGen()).Draw(t, "globalPrefix")

		r := mustResolver(t, config.Source{
			Global:    config.Global{Prefix: globalPrefix},
			Templates: []config.Template{{Name: "t", Prefix: tmplPrefix}},
			Profiles:  []config.Profile{{Name: "game", Template: "t", ID: "umu-1", Exe: "game.exe"}},
		})
		d, err := r.Resolve("game")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if d.Prefix() != tmplPrefix {
			t.Fatalf("prefix %q, want template prefix %q", d.Prefix(), tmplPrefix)
		}
	})
}

// TestPropertyGlobalPrefixFallback checks that the global prefix only
// applies when neither profile nor template sets one.
func TestPropertyGlobalPrefixFallback(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		globalPrefix := pathGen().Draw(t, "globalPrefix")
		tmplPrefix := rapid.OneOf(rapid.Just(""), pathGen()).Draw(t, "templatePrefix")
		profPrefix := rapid.OneOf(rapid.Just(""), pathGen()).Draw(t, "profilePrefix")

		r := mustResolver(t, config.Source{
			Global:    config.Global{Prefix: globalPrefix},
			Templates: []config.Template{{Name: "t", Prefix: tmplPrefix}},
			Profiles: []config.Profile{{
				Name: "game", Template: "t", ID: "umu-1", Exe: "game.exe", Prefix: profPrefix,
			}},
		})
		d, err := r.Resolve("game")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}

		want := globalPrefix
		switch {
		case profPrefix != "":
			want = profPrefix
		case tmplPrefix != "":
			want = tmplPrefix
		}
		if d.Prefix() != want {
			t.Fatalf("prefix %q, want %q", d.Prefix(), want)
		}
	})
}

// TestPropertyArgsRoundTrip checks that args keep their order and content.
func TestPropertyArgsRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		args := rapid.SliceOf(rapid.String()).Draw(t, "args")

		r := mustResolver(t, config.Source{
			Profiles: []config.Profile{{Name: "game", ID: "umu-1", Exe: "game.exe", Args: args}},
		})
		d, err := r.Resolve("game")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got := d.Args(); !slices.Equal(got, args) {
			t.Fatalf("args %q, want %q", got, args)
		}
	})
}

// TestPropertyResolveIdempotent checks that resolving twice gives equal
// descriptors.
func TestPropertyResolveIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		src := config.Source{
			Global: config.Global{
				Prefix: rapid.OneOf(rapid.Just(""), pathGen()).Draw(t, "globalPrefix"),
				Proton: rapid.OneOf(rapid.Just(""), pathGen()).Draw(t, "globalProton"),
			},
			Templates: []config.Template{{
				Name:   "t",
				Proton: rapid.OneOf(rapid.Just(""), pathGen()).Draw(t, "templateProton"),
				Store:  rapid.SampledFrom([]string{"", "egs", "gog", "none"}).Draw(t, "store"),
			}},
			Profiles: []config.Profile{{
				Name:     "game",
				Template: rapid.SampledFrom([]string{"", "t"}).Draw(t, "template"),
				ID:       idGen().Draw(t, "id"),
				Exe:      "game.exe",
				Args:     rapid.SliceOf(rapid.String()).Draw(t, "args"),
			}},
		}

		r := mustResolver(t, src)
		a, err := r.Resolve("game")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		b, err := r.Resolve("game")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !a.Equal(b) {
			t.Fatalf("descriptors differ: %+v vs %+v", a.Params(), b.Params())
		}
		if a.Prefix() == "" {
			t.Fatalf("empty prefix")
		}
	})
}

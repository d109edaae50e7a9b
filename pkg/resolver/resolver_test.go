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
	"context"
	"errors"
	"testing"

	"github.com/korewaChino/umu-wrapper/pkg/config"
	"github.com/korewaChino/umu-wrapper/pkg/helpers"
	"github.com/korewaChino/umu-wrapper/pkg/launch"
	"github.com/korewaChino/umu-wrapper/pkg/store"
	"github.com/korewaChino/umu-wrapper/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testRoot = "/home/user/Games/umu"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func boolPtr(b bool) *bool {
	return &b
}

func newResolver(t *testing.T, sources ...config.Source) *Resolver {
	t.Helper()
	st, err := store.Load(sources)
	require.NoError(t, err)
	return New(st, Options{PrefixRoot: testRoot, HomeDir: "/home/user"})
}

func TestResolveExample(t *testing.T) {
	t.Parallel()

	r := newResolver(t, config.Source{
		Origin: "umu-wrapper.toml",
		Templates: []config.Template{
			{Name: "default", Proton: "/opt/proton"},
		},
		Profiles: []config.Profile{{
			Name:     "game1",
			Template: "default",
			ID:       "umu-1234567",
			Exe:      "game1.exe",
			Args:     []string{"-skip-intro"},
		}},
	})

	d, err := r.Resolve("game1")
	require.NoError(t, err)

	assert.Equal(t, launch.Params{
		Profile: "game1",
		ID:      "umu-1234567",
		Exe:     "game1.exe",
		Args:    []string{"-skip-intro"},
		Prefix:  testRoot + "/umu-1234567",
		Proton:  "/opt/proton",
		Store:   "",
	}, d.Params())
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()

	base := config.Profile{Name: "game", ID: "umu-1", Exe: "game.exe"}

	tests := []struct {
		name     string
		global   config.Global
		template *config.Template
		profile  func(p config.Profile) config.Profile
		want     func(p *launch.Params)
	}{
		{
			name: "no layers derives prefix",
			want: func(p *launch.Params) {
				p.Prefix = testRoot + "/umu-1"
			},
		},
		{
			name:   "global used when nothing else is set",
			global: config.Global{Prefix: "/g/prefix", Proton: "/g/proton", ProtonVerb: "waitforexitandrun"},
			want: func(p *launch.Params) {
				p.Prefix = "/g/prefix"
				p.Proton = "/g/proton"
				p.ProtonVerb = "waitforexitandrun"
			},
		},
		{
			name:     "template beats global",
			global:   config.Global{Prefix: "/g/prefix", Proton: "/g/proton", ProtonVerb: "run"},
			template: &config.Template{Name: "t", Prefix: "/t/prefix", Proton: "/t/proton", ProtonVerb: "waitforexitandrun"},
			want: func(p *launch.Params) {
				p.Prefix = "/t/prefix"
				p.Proton = "/t/proton"
				p.ProtonVerb = "waitforexitandrun"
			},
		},
		{
			name:     "template without prefix falls back to global",
			global:   config.Global{Prefix: "/g/prefix"},
			template: &config.Template{Name: "t", Proton: "/t/proton"},
			want: func(p *launch.Params) {
				p.Prefix = "/g/prefix"
				p.Proton = "/t/proton"
			},
		},
		{
			name:     "profile beats template",
			global:   config.Global{Prefix: "/g/prefix"},
			template: &config.Template{Name: "t", Prefix: "/t/prefix", Store: "egs"},
			profile: func(p config.Profile) config.Profile {
				p.Prefix = "/p/prefix"
				p.Store = "gog"
				return p
			},
			want: func(p *launch.Params) {
				p.Prefix = "/p/prefix"
				p.Store = "gog"
			},
		},
		{
			name:     "store comes from template only",
			template: &config.Template{Name: "t", Store: "egs"},
			want: func(p *launch.Params) {
				p.Prefix = testRoot + "/umu-1"
				p.Store = "egs"
			},
		},
		{
			name:     "template no_proton",
			global:   config.Global{Proton: "/g/proton"},
			template: &config.Template{Name: "t", NoProton: boolPtr(true)},
			want: func(p *launch.Params) {
				p.Prefix = testRoot + "/umu-1"
				p.Proton = "/g/proton"
				p.NoProton = true
			},
		},
		{
			name:     "profile no_proton false beats template",
			template: &config.Template{Name: "t", NoProton: boolPtr(true)},
			profile: func(p config.Profile) config.Profile {
				p.NoProton = boolPtr(false)
				return p
			},
			want: func(p *launch.Params) {
				p.Prefix = testRoot + "/umu-1"
			},
		},
		{
			name:     "env overlay",
			template: &config.Template{Name: "t", Env: map[string]string{"A": "t", "B": "t"}},
			profile: func(p config.Profile) config.Profile {
				p.Env = map[string]string{"B": "p", "C": "p"}
				return p
			},
			want: func(p *launch.Params) {
				p.Prefix = testRoot + "/umu-1"
				p.Env = map[string]string{"A": "t", "B": "p", "C": "p"}
			},
		},
		{
			name:   "home expansion",
			global: config.Global{Prefix: "~/prefixes/game", Proton: "~/.steam/proton"},
			want: func(p *launch.Params) {
				p.Prefix = "/home/user/prefixes/game"
				p.Proton = "/home/user/.steam/proton"
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			prof := base.Clone()
			if tt.profile != nil {
				prof = tt.profile(prof)
			}
			src := config.Source{Global: tt.global}
			if tt.template != nil {
				src.Templates = []config.Template{*tt.template}
				prof.Template = tt.template.Name
			}
			src.Profiles = []config.Profile{prof}

			d, err := newResolver(t, src).Resolve("game")
			require.NoError(t, err)

			want := launch.Params{Profile: "game", ID: "umu-1", Exe: "game.exe", Args: []string{}}
			tt.want(&want)
			assert.Equal(t, want, d.Params())
		})
	}
}

func TestResolveDefaultTemplate(t *testing.T) {
	t.Parallel()

	r := newResolver(t, config.Source{
		Global: config.Global{DefaultTemplate: "base"},
		Templates: []config.Template{
			{Name: "base", Proton: "/opt/base"},
			{Name: "other", Proton: "/opt/other"},
		},
		Profiles: []config.Profile{
			{Name: "implicit", ID: "1", Exe: "a.exe"},
			{Name: "explicit", Template: "other", ID: "2", Exe: "b.exe"},
		},
	})

	d, err := r.Resolve("implicit")
	require.NoError(t, err)
	assert.Equal(t, "/opt/base", d.Proton())

	d, err = r.Resolve("explicit")
	require.NoError(t, err)
	assert.Equal(t, "/opt/other", d.Proton())
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	r := newResolver(t, config.Source{
		Global: config.Global{Prefix: "/g"},
		Profiles: []config.Profile{
			{Name: "orphan", Template: "missing", ID: "1", Exe: "a.exe"},
			{Name: "noexe", Template: "missing", ID: "2"},
			{Name: "noid", Exe: "a.exe"},
			{Name: "blankexe", ID: "3", Exe: "  "},
			{Name: "slashid", ID: "a/b", Exe: "a.exe"},
			{Name: "dotid", ID: ".", Exe: "a.exe"},
			{Name: "dotdotid", ID: "..", Exe: "a.exe"},
		},
	})

	t.Run("unknown profile", func(t *testing.T) {
		t.Parallel()

		d, err := r.Resolve("nope")
		var nfErr *store.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, store.KindProfile, nfErr.Kind)
		assert.True(t, d.Equal(launch.Descriptor{}))
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		d, err := r.Resolve("orphan")
		var tErr *store.TemplateNotFoundError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "orphan", tErr.Profile)
		assert.Equal(t, "missing", tErr.Template)
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.Empty(t, d.Prefix())
	})

	t.Run("validation before template lookup", func(t *testing.T) {
		t.Parallel()

		_, err := r.Resolve("noexe")
		var vErr *store.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "noexe", vErr.Name)

		var tErr *store.TemplateNotFoundError
		assert.False(t, errors.As(err, &tErr))

		var fields *validation.Error
		require.ErrorAs(t, err, &fields)
		assert.True(t, fields.HasField("exe"))
	})

	for _, name := range []string{"noid", "blankexe", "slashid", "dotid", "dotdotid"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d, err := r.Resolve(name)
			var vErr *store.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Empty(t, d.Prefix())
		})
	}
}

func TestResolveDoesNotShareState(t *testing.T) {
	t.Parallel()

	r := newResolver(t, config.Source{
		Templates: []config.Template{{Name: "t", Env: map[string]string{"A": "1"}}},
		Profiles: []config.Profile{{
			Name: "game", Template: "t", ID: "1", Exe: "a.exe", Args: []string{"-a", "-b"},
		}},
	})

	first, err := r.Resolve("game")
	require.NoError(t, err)

	args := first.Args()
	args[0] = "-changed"
	env := first.Env()
	env["A"] = "2"

	second, err := r.Resolve("game")
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, []string{"-a", "-b"}, second.Args())
	assert.Equal(t, map[string]string{"A": "1"}, second.Env())
}

func TestResolveAll(t *testing.T) {
	t.Parallel()

	t.Run("sorted by name", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, config.Source{Profiles: []config.Profile{
			{Name: "c", ID: "3", Exe: "c.exe"},
			{Name: "a", ID: "1", Exe: "a.exe"},
			{Name: "b", ID: "2", Exe: "b.exe"},
		}})

		all, err := r.ResolveAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, want := range []string{"a", "b", "c"} {
			assert.Equal(t, want, all[i].Profile())
			single, err := r.Resolve(want)
			require.NoError(t, err)
			assert.True(t, single.Equal(all[i]))
		}
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		r := newResolver(t, config.Source{Profiles: []config.Profile{
			{Name: "good", ID: "1", Exe: "a.exe"},
			{Name: "bad", Template: "missing", ID: "2", Exe: "b.exe"},
		}})

		all, err := r.ResolveAll(context.Background())
		require.Error(t, err)
		assert.Nil(t, all)
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()

		all, err := newResolver(t).ResolveAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := newResolver(t, config.Source{Profiles: []config.Profile{{Name: "a", ID: "1", Exe: "a.exe"}}})
		_, err := r.ResolveAll(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDerivePrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/root/umu-1", DerivePrefix("/root", "umu-1"))
	assert.Equal(t, "/root/umu-1", DerivePrefix("/root/", "umu-1"))
}

func TestNewDefaultsPrefixRoot(t *testing.T) {
	t.Parallel()

	st, err := store.Load([]config.Source{{Profiles: []config.Profile{{Name: "g", ID: "umu-9", Exe: "g.exe"}}}})
	require.NoError(t, err)

	d, err := New(st, Options{}).Resolve("g")
	require.NoError(t, err)
	assert.Equal(t, DerivePrefix(config.DefaultPrefixRoot(), "umu-9"), d.Prefix())
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	assert.Equal(t, config.DefaultPrefixRoot(), opts.PrefixRoot)
	assert.Equal(t, config.HomeDir(), opts.HomeDir)

	st, err := store.Load([]config.Source{{Profiles: []config.Profile{
		{Name: "g", ID: "umu-9", Exe: "g.exe", Prefix: "~/pfx"},
	}}})
	require.NoError(t, err)

	d, err := New(st, opts).Resolve("g")
	require.NoError(t, err)
	assert.Equal(t, helpers.ExpandHome("~/pfx", config.HomeDir()), d.Prefix())
}

func TestResolveTemplateSuggestion(t *testing.T) {
	t.Parallel()

	r := newResolver(t, config.Source{
		Templates: []config.Template{{Name: "default"}},
		Profiles:  []config.Profile{{Name: "g", Template: "defualt", ID: "1", Exe: "g.exe"}},
	})

	_, err := r.Resolve("g")
	var tErr *store.TemplateNotFoundError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, []string{"default"}, tErr.Suggestions)
	assert.Equal(t, `profile "g" references unknown template "defualt" (did you mean "default"?)`, err.Error())
}

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

// Package resolver turns a named profile into a launch.Descriptor by
// folding the profile, its template and the global settings together.
//
// For each field the first non-empty value wins, in this order:
//
//	prefix       profile, template, global, <PrefixRoot>/<id>
//	proton       profile, template, global, empty
//	store        profile, template, empty
//	proton_verb  profile, template, global, empty
//	no_proton    profile, template, false
//	env          template overlaid by profile
//
// id, exe and args only exist on profiles. A profile without a template
// uses global.default_template when that is set, otherwise no template
// contributes anything.
package resolver

import (
	"context"
	"maps"

	"github.com/korewaChino/umu-wrapper/pkg/config"
	"github.com/korewaChino/umu-wrapper/pkg/helpers"
	"github.com/korewaChino/umu-wrapper/pkg/launch"
	"github.com/korewaChino/umu-wrapper/pkg/store"
	"github.com/korewaChino/umu-wrapper/pkg/validation"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options configure derivation rules.
type Options struct {
	// PrefixRoot is the directory derived prefixes are placed under.
	PrefixRoot string
	// HomeDir replaces a leading "~" in prefix and proton paths. Paths are
	// left alone when it is empty.
	HomeDir string
}

// DefaultOptions uses the XDG home directory.
func DefaultOptions() Options {
	return Options{
		PrefixRoot: config.DefaultPrefixRoot(),
		HomeDir:    config.HomeDir(),
	}
}

type Resolver struct {
	store     *store.Store
	validator *validation.Validator
	opts      Options
}

func New(st *store.Store, opts Options) *Resolver {
	if opts.PrefixRoot == "" {
		opts.PrefixRoot = config.DefaultPrefixRoot()
	}
	return &Resolver{
		store:     st,
		validator: validation.DefaultValidator,
		opts:      opts,
	}
}

// DerivePrefix returns the prefix used for a game with no configured one.
func DerivePrefix(root, id string) string {
	return helpers.JoinSlash(root, id)
}

// Resolve produces the launch descriptor for the named profile. On error
// the zero Descriptor is returned.
func (r *Resolver) Resolve(name string) (launch.Descriptor, error) {
	prof, err := r.store.Profile(name)
	if err != nil {
		return launch.Descriptor{}, err
	}

	if err := r.validator.Validate(&prof); err != nil {
		return launch.Descriptor{}, &store.ValidationError{Kind: store.KindProfile, Name: name, Err: err}
	}

	global := r.store.Global()

	var tmpl config.Template
	tmplName := prof.Template
	if tmplName == "" {
		tmplName = global.DefaultTemplate
	}
	if tmplName != "" {
		tmpl, err = r.store.Template(tmplName)
		if err != nil {
			return launch.Descriptor{}, &store.TemplateNotFoundError{
				Profile:     name,
				Template:    tmplName,
				Suggestions: r.store.Suggest(store.KindTemplate, tmplName),
			}
		}
	}

	prefix := firstNonEmpty(prof.Prefix, tmpl.Prefix, global.Prefix)
	if prefix == "" {
		prefix = DerivePrefix(r.opts.PrefixRoot, prof.ID)
		log.Debug().Msgf("no prefix configured for %s, using %s", name, prefix)
	}

	noProton := false
	switch {
	case prof.NoProton != nil:
		noProton = *prof.NoProton
	case tmpl.NoProton != nil:
		noProton = *tmpl.NoProton
	}

	var env map[string]string
	if len(tmpl.Env) > 0 || len(prof.Env) > 0 {
		env = make(map[string]string, len(tmpl.Env)+len(prof.Env))
		maps.Copy(env, tmpl.Env)
		maps.Copy(env, prof.Env)
	}

	return launch.NewDescriptor(launch.Params{
		Profile:    name,
		ID:         prof.ID,
		Exe:        prof.Exe,
		Args:       prof.Args,
		Prefix:     helpers.ExpandHome(prefix, r.opts.HomeDir),
		Proton:     helpers.ExpandHome(firstNonEmpty(prof.Proton, tmpl.Proton, global.Proton), r.opts.HomeDir),
		Store:      firstNonEmpty(prof.Store, tmpl.Store),
		ProtonVerb: firstNonEmpty(prof.ProtonVerb, tmpl.ProtonVerb, global.ProtonVerb),
		NoProton:   noProton,
		Env:        env,
	}), nil
}

// ResolveAll resolves every profile in the store concurrently. Results are
// ordered by profile name. The first failure cancels the rest and is
// returned.
func (r *Resolver) ResolveAll(ctx context.Context) ([]launch.Descriptor, error) {
	names := r.store.ProfileNames()
	results := make([]launch.Descriptor, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := r.Resolve(name)
			if err != nil {
				return err
			}
			results[i] = d
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

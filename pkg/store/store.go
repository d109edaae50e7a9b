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

// Package store merges configuration sources into a single read-only view
// of global settings, templates and profiles.
//
// Sources are merged in order. Global settings merge field by field with
// later non-empty values winning. Templates and profiles are keyed by name
// and replaced whole when a later source redefines them, unless the store is
// built with PolicyStrict, in which case any redefinition is an error. A name
// repeated inside a single source is always an error.
//
// A Store is never modified after Load returns, so it can be shared between
// goroutines without locking.
package store

import (
	"slices"
	"strings"

	"github.com/korewaChino/umu-wrapper/pkg/config"
	"github.com/korewaChino/umu-wrapper/pkg/validation"
	"github.com/rs/zerolog/log"
)

// Policy controls what happens when a later source redefines a name.
type Policy int

const (
	// PolicyOverride replaces the earlier entry (last writer wins).
	PolicyOverride Policy = iota
	// PolicyStrict rejects the redefinition with a DuplicateNameError.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyOverride:
		return "override"
	case PolicyStrict:
		return "strict"
	default:
		return "unknown"
	}
}

type options struct {
	validator *validation.Validator
	policy    Policy
}

type Option func(*options)

func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

type entry[T any] struct {
	value  T
	origin string
}

type Store struct {
	templates map[string]entry[config.Template]
	profiles  map[string]entry[config.Profile]
	global    config.Global
	policy    Policy
}

// Load builds a Store from sources, merged in the given order.
func Load(sources []config.Source, opts ...Option) (*Store, error) {
	o := options{
		policy:    PolicyOverride,
		validator: validation.DefaultValidator,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{
		templates: make(map[string]entry[config.Template]),
		profiles:  make(map[string]entry[config.Profile]),
		policy:    o.policy,
	}

	for i := range sources {
		src := &sources[i]

		s.global = mergeGlobal(s.global, src.Global)

		seen := make(map[string]struct{}, len(src.Templates))
		for _, t := range src.Templates {
			if err := o.validator.Validate(&t); err != nil {
				return nil, &ValidationError{Kind: KindTemplate, Name: t.Name, Err: err}
			}
			if err := s.checkDuplicate(KindTemplate, t.Name, src.Origin, seen); err != nil {
				return nil, err
			}
			s.templates[t.Name] = entry[config.Template]{value: t.Clone(), origin: src.Origin}
		}

		seen = make(map[string]struct{}, len(src.Profiles))
		for _, p := range src.Profiles {
			if strings.TrimSpace(p.Name) == "" {
				return nil, &ValidationError{Kind: KindProfile, Err: nameRequired()}
			}
			if err := s.checkDuplicate(KindProfile, p.Name, src.Origin, seen); err != nil {
				return nil, err
			}
			s.profiles[p.Name] = entry[config.Profile]{value: p.Clone(), origin: src.Origin}
		}
	}

	log.Debug().
		Int("templates", len(s.templates)).
		Int("profiles", len(s.profiles)).
		Str("policy", s.policy.String()).
		Msg("built layer store")

	return s, nil
}

func (s *Store) checkDuplicate(kind Kind, name, origin string, seen map[string]struct{}) error {
	if _, ok := seen[name]; ok {
		return &DuplicateNameError{Kind: kind, Name: name, Origin: origin}
	}
	seen[name] = struct{}{}

	prev, ok := s.previousOrigin(kind, name)
	if !ok {
		return nil
	}

	if s.policy == PolicyStrict {
		return &DuplicateNameError{Kind: kind, Name: name, Origin: origin, Previous: prev}
	}

	log.Warn().Msgf("%s %q from %s overrides definition in %s", kind, name, origin, prev)
	return nil
}

func (s *Store) previousOrigin(kind Kind, name string) (string, bool) {
	switch kind {
	case KindTemplate:
		e, ok := s.templates[name]
		return e.origin, ok
	case KindProfile:
		e, ok := s.profiles[name]
		return e.origin, ok
	default:
		return "", false
	}
}

func nameRequired() error {
	return &validation.Error{Fields: []validation.FieldError{{
		Field:   "Name",
		Tag:     "required",
		Message: "name is required",
	}}}
}

// mergeGlobal overlays the non-empty fields of overlay onto base.
func mergeGlobal(base, overlay config.Global) config.Global {
	if overlay.Prefix != "" {
		base.Prefix = overlay.Prefix
	}
	if overlay.Proton != "" {
		base.Proton = overlay.Proton
	}
	if overlay.ProtonVerb != "" {
		base.ProtonVerb = overlay.ProtonVerb
	}
	if overlay.DefaultTemplate != "" {
		base.DefaultTemplate = overlay.DefaultTemplate
	}
	return base
}

func (s *Store) Global() config.Global {
	return s.global
}

func (s *Store) Policy() Policy {
	return s.policy
}

// Profile returns a copy of the named profile.
func (s *Store) Profile(name string) (config.Profile, error) {
	e, ok := s.profiles[name]
	if !ok {
		return config.Profile{}, &NotFoundError{
			Kind:        KindProfile,
			Name:        name,
			Suggestions: s.Suggest(KindProfile, name),
		}
	}
	return e.value.Clone(), nil
}

// Template returns a copy of the named template.
func (s *Store) Template(name string) (config.Template, error) {
	e, ok := s.templates[name]
	if !ok {
		return config.Template{}, &NotFoundError{
			Kind:        KindTemplate,
			Name:        name,
			Suggestions: s.Suggest(KindTemplate, name),
		}
	}
	return e.value.Clone(), nil
}

// ProfileOrigin returns the source a profile was taken from.
func (s *Store) ProfileOrigin(name string) (string, bool) {
	e, ok := s.profiles[name]
	return e.origin, ok
}

// ProfileNames returns all profile names, sorted.
func (s *Store) ProfileNames() []string {
	return sortedKeys(s.profiles)
}

// TemplateNames returns all template names, sorted.
func (s *Store) TemplateNames() []string {
	return sortedKeys(s.templates)
}

func sortedKeys[T any](m map[string]entry[T]) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

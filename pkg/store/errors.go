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
	"errors"
	"fmt"
)

// ErrNotFound is matched by every lookup failure, including a profile
// pointing at a template which does not exist.
var ErrNotFound = errors.New("not found")

// Kind names the type of a named entry.
type Kind string

const (
	KindProfile  Kind = "profile"
	KindTemplate Kind = "template"
)

// NotFoundError is returned when a named profile or template is absent.
type NotFoundError struct {
	Kind Kind
	Name string
	// Suggestions are defined names close to Name, best first.
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestions[0])
	}
	return msg
}

func (*NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TemplateNotFoundError is returned when a profile references a template
// name absent from the store. It unwraps to a *NotFoundError for the
// template.
type TemplateNotFoundError struct {
	Profile  string
	Template string
	// Suggestions are defined template names close to Template.
	Suggestions []string
}

func (e *TemplateNotFoundError) Error() string {
	msg := fmt.Sprintf("profile %q references unknown template %q", e.Profile, e.Template)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestions[0])
	}
	return msg
}

func (e *TemplateNotFoundError) Unwrap() error {
	return &NotFoundError{Kind: KindTemplate, Name: e.Template}
}

// DuplicateNameError is returned when two entries of the same kind share a
// name within the merge scope.
type DuplicateNameError struct {
	Kind     Kind
	Name     string
	Origin   string
	Previous string
}

func (e *DuplicateNameError) Error() string {
	if e.Previous == "" || e.Previous == e.Origin {
		return fmt.Sprintf("duplicate %s %q in %s", e.Kind, e.Name, e.Origin)
	}
	return fmt.Sprintf("duplicate %s %q in %s (first defined in %s)", e.Kind, e.Name, e.Origin, e.Previous)
}

// ValidationError is returned when an entry is missing required values.
// Err is usually a *validation.Error listing the offending fields.
type ValidationError struct {
	Err  error
	Kind Kind
	Name string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

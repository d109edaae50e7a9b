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

// Package validation checks configuration records using go-playground/validator
// with a few custom tags for launch settings.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var envKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validator validates configuration records.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new Validator with registered custom validators.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("nonblank", validateNonBlank)
	_ = v.RegisterValidation("envkey", validateEnvKey)
	_ = v.RegisterValidation("pathsegment", validatePathSegment)

	return &Validator{validate: v}
}

// DefaultValidator is a shared validator instance. validator.Validate is
// safe for concurrent use once all custom tags are registered.
var DefaultValidator = NewValidator()

// Validate validates a struct and returns an *Error if any field fails.
func (v *Validator) Validate(record any) error {
	if err := v.validate.Struct(record); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return NewError(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// validateNonBlank rejects empty and whitespace-only strings.
func validateNonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateEnvKey checks a value is usable as an environment variable name.
func validateEnvKey(fl validator.FieldLevel) bool {
	return envKeyRe.MatchString(fl.Field().String())
}

// validatePathSegment checks a value can be used as a single directory name
// below another directory: no separators and no "." or ".." entries.
func validatePathSegment(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}

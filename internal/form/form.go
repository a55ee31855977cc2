// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

// Package form validates submitted form values and collects per-field
// error messages for re-rendering.
package form

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// Form wraps submitted values with validation state. Values holds the raw
// submission so templates can re-fill fields after a failed validation.
type Form struct {
	Values url.Values
	Errors map[string]string
}

// New creates a Form around the given submitted values.
func New(values url.Values) *Form {
	return &Form{
		Values: values,
		Errors: make(map[string]string),
	}
}

// Get returns the trimmed value of a field.
func (f *Form) Get(field string) string {
	return strings.TrimSpace(f.Values.Get(field))
}

// Valid reports whether no validation errors have been recorded.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// AddError records an error for a field. The first error per field wins so
// the user sees the most fundamental problem.
func (f *Form) AddError(field, message string) {
	if _, exists := f.Errors[field]; !exists {
		f.Errors[field] = message
	}
}

// Required checks that each named field has a non-blank value.
func (f *Form) Required(fields ...string) {
	for _, field := range fields {
		if f.Get(field) == "" {
			f.AddError(field, "This field is required")
		}
	}
}

// MinLength checks that a field has at least n characters.
func (f *Form) MinLength(field string, n int) {
	value := f.Get(field)
	if value != "" && len([]rune(value)) < n {
		f.AddError(field, fmt.Sprintf("Must be at least %d characters", n))
	}
}

// MaxLength checks that a field has at most n characters.
func (f *Form) MaxLength(field string, n int) {
	if len([]rune(f.Get(field))) > n {
		f.AddError(field, fmt.Sprintf("Must be at most %d characters", n))
	}
}

// Email checks that a field parses as an email address.
func (f *Form) Email(field string) {
	value := f.Get(field)
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f.AddError(field, "Must be a valid email address")
	}
}

// OneOf checks that a field value is one of the allowed choices.
// A blank value passes; combine with Required when the field is mandatory.
func (f *Form) OneOf(field string, choices ...string) {
	value := f.Get(field)
	if value == "" {
		return
	}
	for _, choice := range choices {
		if value == choice {
			return
		}
	}
	f.AddError(field, "Invalid selection")
}

// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package form

import (
	"net/url"
	"testing"
)

func TestRequired(t *testing.T) {
	f := New(url.Values{
		"name":  {"Maria"},
		"email": {"   "},
	})
	f.Required("name", "email", "message")

	if f.Valid() {
		t.Fatal("form with blank fields should be invalid")
	}
	if _, ok := f.Errors["name"]; ok {
		t.Error("name should not have an error")
	}
	if f.Errors["email"] == "" {
		t.Error("whitespace-only email should fail Required")
	}
	if f.Errors["message"] == "" {
		t.Error("missing message should fail Required")
	}
}

func TestMinLength(t *testing.T) {
	f := New(url.Values{"message": {"too short"}})
	f.MinLength("message", 10)

	if f.Valid() {
		t.Fatal("9-character message should fail a 10-character minimum")
	}
}

func TestMinLength_BlankSkipped(t *testing.T) {
	f := New(url.Values{})
	f.MinLength("message", 10)

	if !f.Valid() {
		t.Fatal("MinLength should skip blank values, Required handles those")
	}
}

func TestMaxLength_Runes(t *testing.T) {
	f := New(url.Values{"name": {"ñññññ"}})
	f.MaxLength("name", 5)

	if !f.Valid() {
		t.Fatal("5 runes should pass a 5-character maximum")
	}

	f.MaxLength("name", 4)
	if f.Valid() {
		t.Fatal("5 runes should fail a 4-character maximum")
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"info@blackstoneegpartners.com", true},
		{"Maria <maria@example.com>", true},
		{"not-an-email", false},
		{"@missing-local.com", false},
		{"", true}, // blank passes, Required handles mandatory fields
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			f := New(url.Values{"email": {tt.value}})
			f.Email("email")
			if f.Valid() != tt.valid {
				t.Errorf("Email(%q) valid = %v, want %v", tt.value, f.Valid(), tt.valid)
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	choices := []string{"energy", "real-estate", "other"}

	f := New(url.Values{"service": {"energy"}})
	f.OneOf("service", choices...)
	if !f.Valid() {
		t.Fatal("listed choice should pass")
	}

	f = New(url.Values{"service": {"consulting"}})
	f.OneOf("service", choices...)
	if f.Valid() {
		t.Fatal("unlisted choice should fail")
	}

	f = New(url.Values{})
	f.OneOf("service", choices...)
	if !f.Valid() {
		t.Fatal("blank value should pass OneOf")
	}
}

func TestAddError_FirstWins(t *testing.T) {
	f := New(url.Values{})
	f.AddError("name", "first")
	f.AddError("name", "second")

	if f.Errors["name"] != "first" {
		t.Errorf("Errors[name] = %q, want first recorded error", f.Errors["name"])
	}
}

func TestGet_Trims(t *testing.T) {
	f := New(url.Values{"name": {"  Maria  "}})
	if got := f.Get("name"); got != "Maria" {
		t.Errorf("Get = %q, want trimmed value", got)
	}
}

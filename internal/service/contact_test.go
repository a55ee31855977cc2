// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/blackstoneeg/website/internal/mail"
	"github.com/blackstoneeg/website/internal/store"
	"github.com/blackstoneeg/website/internal/testutil"
)

// failingSender always fails, counting delivery attempts.
type failingSender struct {
	attempts atomic.Int64
}

func (f *failingSender) Send(ctx context.Context, msg mail.Message) error {
	f.attempts.Add(1)
	return errors.New("smtp unavailable")
}

// capturingSender records delivered messages.
type capturingSender struct {
	messages []mail.Message
}

func (c *capturingSender) Send(ctx context.Context, msg mail.Message) error {
	c.messages = append(c.messages, msg)
	return nil
}

func submitRequest() SubmitRequest {
	return SubmitRequest{
		Name:    "Maria Obiang",
		Email:   "maria@example.com",
		Phone:   "+240 555 000 111",
		Service: "energy",
		Message: "We are evaluating an investment in the energy sector.",
	}
}

func TestSubmit_RecordsSubmission(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sender := &capturingSender{}
	svc := NewContactService(db, sender, NewSettingsService(db))

	sub, err := svc.Submit(context.Background(), submitRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if !strings.HasPrefix(sub.Reference, "CNT-") || len(sub.Reference) != 12 {
		t.Errorf("reference = %q, want CNT- followed by 8 characters", sub.Reference)
	}
	if sub.Status != store.ContactStatusNew {
		t.Errorf("status = %q, want %q", sub.Status, store.ContactStatusNew)
	}

	// Admin notification plus visitor confirmation
	if len(sender.messages) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.messages))
	}
	if sender.messages[1].To != "maria@example.com" {
		t.Errorf("confirmation sent to %q", sender.messages[1].To)
	}
	for _, msg := range sender.messages {
		if !strings.Contains(msg.Subject, sub.Reference) {
			t.Errorf("subject %q missing reference", msg.Subject)
		}
	}
}

func TestSubmit_EmailFailureSwallowed(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	sender := &failingSender{}
	svc := NewContactService(db, sender, NewSettingsService(db))

	sub, err := svc.Submit(context.Background(), submitRequest())
	if err != nil {
		t.Fatalf("Submit should succeed despite mail failure: %v", err)
	}

	// Single attempt per message, no retries
	if got := sender.attempts.Load(); got != 2 {
		t.Errorf("delivery attempts = %d, want 2", got)
	}

	// The submission is still on record
	q := store.New(db)
	stored, err := q.GetContactSubmissionByID(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("GetContactSubmissionByID: %v", err)
	}
	if stored.Reference != sub.Reference {
		t.Errorf("stored reference = %q, want %q", stored.Reference, sub.Reference)
	}
}

func TestSubmit_NilSender(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewContactService(db, nil, NewSettingsService(db))

	if _, err := svc.Submit(context.Background(), submitRequest()); err != nil {
		t.Fatalf("Submit with mail disabled: %v", err)
	}
}

func TestNewReference_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := newReference()
		if seen[ref] {
			t.Fatalf("duplicate reference %q", ref)
		}
		seen[ref] = true
	}
}

// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/blackstoneeg/website/internal/mail"
	"github.com/blackstoneeg/website/internal/store"
)

// ContactService records contact form submissions and sends the email
// notifications that follow.
type ContactService struct {
	queries  *store.Queries
	sender   mail.Sender
	settings *SettingsService
}

// NewContactService creates a contact service. sender may be nil when email
// is disabled; submissions are still recorded.
func NewContactService(db *sql.DB, sender mail.Sender, settings *SettingsService) *ContactService {
	return &ContactService{
		queries:  store.New(db),
		sender:   sender,
		settings: settings,
	}
}

// SubmitRequest carries a validated contact form submission.
type SubmitRequest struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

// Submit records the submission and sends the notification and confirmation
// emails. The submission is the source of truth: email failures are logged
// with the submission reference and never surfaced to the visitor.
func (s *ContactService) Submit(ctx context.Context, req SubmitRequest) (store.ContactSubmission, error) {
	reference := newReference()

	sub, err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		Reference: reference,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Message:   req.Message,
	})
	if err != nil {
		return store.ContactSubmission{}, fmt.Errorf("recording contact submission: %w", err)
	}

	s.sendEmails(ctx, sub)

	return sub, nil
}

// sendEmails makes a single delivery attempt for each message.
func (s *ContactService) sendEmails(ctx context.Context, sub store.ContactSubmission) {
	if s.sender == nil {
		return
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		slog.Warn("contact emails skipped, settings unavailable",
			"reference", sub.Reference, "error", err)
		return
	}

	data := map[string]string{
		"Reference":   sub.Reference,
		"Name":        sub.Name,
		"Email":       sub.Email,
		"Phone":       sub.Phone,
		"Service":     sub.Service,
		"Message":     sub.Message,
		"CompanyName": settings.CompanyName,
	}

	if body, err := mail.RenderTemplate("contact_notification.html", data); err != nil {
		slog.Warn("rendering contact notification failed",
			"reference", sub.Reference, "error", err)
	} else if err := s.sender.Send(ctx, mail.Message{
		To:       settings.Email,
		Subject:  "New contact inquiry " + sub.Reference,
		HTMLBody: body,
	}); err != nil {
		slog.Warn("sending contact notification failed",
			"reference", sub.Reference, "error", err)
	}

	confirmData := map[string]string{
		"Reference":   sub.Reference,
		"Name":        sub.Name,
		"CompanyName": settings.CompanyName,
		"Address":     settings.Address,
		"Phone":       settings.Phone,
	}
	if body, err := mail.RenderTemplate("contact_confirmation.html", confirmData); err != nil {
		slog.Warn("rendering contact confirmation failed",
			"reference", sub.Reference, "error", err)
	} else if err := s.sender.Send(ctx, mail.Message{
		To:       sub.Email,
		Subject:  "We received your inquiry " + sub.Reference,
		HTMLBody: body,
	}); err != nil {
		slog.Warn("sending contact confirmation failed",
			"reference", sub.Reference, "error", err)
	}
}

// newReference generates a short human-quotable submission reference.
func newReference() string {
	return "CNT-" + strings.ToUpper(uuid.New().String()[:8])
}

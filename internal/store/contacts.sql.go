// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const contactColumns = `id, reference, name, email, phone, service, message, status, notes, created_at, updated_at`

func scanContact(row interface{ Scan(...any) error }) (ContactSubmission, error) {
	var c ContactSubmission
	err := row.Scan(&c.ID, &c.Reference, &c.Name, &c.Email, &c.Phone, &c.Service,
		&c.Message, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const createContactSubmission = `
INSERT INTO contact_submissions (reference, name, email, phone, service, message, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + contactColumns

// CreateContactSubmissionParams holds the inputs for CreateContactSubmission.
type CreateContactSubmissionParams struct {
	Reference string
	Name      string
	Email     string
	Phone     string
	Service   string
	Message   string
}

// CreateContactSubmission records a new contact form submission with status "new".
func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, createContactSubmission,
		arg.Reference, arg.Name, arg.Email, arg.Phone, arg.Service, arg.Message,
		ContactStatusNew, now, now)
	return scanContact(row)
}

const getContactSubmissionByID = `
SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = ?
`

// GetContactSubmissionByID returns the submission with the given ID.
func (q *Queries) GetContactSubmissionByID(ctx context.Context, id int64) (ContactSubmission, error) {
	return scanContact(q.db.QueryRowContext(ctx, getContactSubmissionByID, id))
}

const listContactSubmissions = `
SELECT ` + contactColumns + ` FROM contact_submissions
WHERE (?1 = '' OR status = ?1)
  AND (?2 = '' OR service = ?2)
  AND (?3 = '' OR name LIKE '%' || ?3 || '%' OR email LIKE '%' || ?3 || '%' OR message LIKE '%' || ?3 || '%')
ORDER BY created_at DESC
LIMIT ?4 OFFSET ?5
`

// ListContactSubmissionsParams holds the inputs for ListContactSubmissions.
// Empty Status, Service and Search values disable the corresponding filter.
type ListContactSubmissionsParams struct {
	Status  string
	Service string
	Search  string
	Limit   int64
	Offset  int64
}

// ListContactSubmissions returns a filtered page of submissions, newest first.
func (q *Queries) ListContactSubmissions(ctx context.Context, arg ListContactSubmissionsParams) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions,
		arg.Status, arg.Service, arg.Search, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []ContactSubmission
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, c)
	}
	return subs, rows.Err()
}

const countContactSubmissions = `
SELECT COUNT(*) FROM contact_submissions
WHERE (?1 = '' OR status = ?1)
  AND (?2 = '' OR service = ?2)
  AND (?3 = '' OR name LIKE '%' || ?3 || '%' OR email LIKE '%' || ?3 || '%' OR message LIKE '%' || ?3 || '%')
`

// CountContactSubmissionsParams holds the inputs for CountContactSubmissions.
type CountContactSubmissionsParams struct {
	Status  string
	Service string
	Search  string
}

// CountContactSubmissions counts submissions matching the same filters as
// ListContactSubmissions.
func (q *Queries) CountContactSubmissions(ctx context.Context, arg CountContactSubmissionsParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countContactSubmissions,
		arg.Status, arg.Service, arg.Search).Scan(&n)
	return n, err
}

const countContactSubmissionsByStatus = `
SELECT status, COUNT(*) FROM contact_submissions GROUP BY status
`

// CountContactSubmissionsByStatus returns submission counts keyed by status.
func (q *Queries) CountContactSubmissionsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx, countContactSubmissionsByStatus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

const countContactSubmissionsByService = `
SELECT service, COUNT(*) FROM contact_submissions WHERE service != '' GROUP BY service
`

// CountContactSubmissionsByService returns submission counts keyed by
// requested service, skipping submissions without one.
func (q *Queries) CountContactSubmissionsByService(ctx context.Context) (map[string]int64, error) {
	rows, err := q.db.QueryContext(ctx, countContactSubmissionsByService)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var service string
		var n int64
		if err := rows.Scan(&service, &n); err != nil {
			return nil, err
		}
		counts[service] = n
	}
	return counts, rows.Err()
}

const countContactSubmissionsSince = `
SELECT COUNT(*) FROM contact_submissions WHERE created_at >= ?
`

// CountContactSubmissionsSince counts submissions created at or after the
// given time.
func (q *Queries) CountContactSubmissionsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countContactSubmissionsSince, since).Scan(&n)
	return n, err
}

const listRecentContactSubmissions = `
SELECT ` + contactColumns + ` FROM contact_submissions ORDER BY created_at DESC LIMIT ?
`

// ListRecentContactSubmissions returns the newest submissions.
func (q *Queries) ListRecentContactSubmissions(ctx context.Context, limit int64) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listRecentContactSubmissions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subs []ContactSubmission
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, c)
	}
	return subs, rows.Err()
}

const updateContactSubmissionTriage = `
UPDATE contact_submissions SET status = ?, notes = ?, updated_at = ?
WHERE id = ?
RETURNING ` + contactColumns

// UpdateContactSubmissionTriageParams holds the inputs for
// UpdateContactSubmissionTriage.
type UpdateContactSubmissionTriageParams struct {
	ID     int64
	Status string
	Notes  string
}

// UpdateContactSubmissionTriage updates the triage status and internal notes
// of a submission.
func (q *Queries) UpdateContactSubmissionTriage(ctx context.Context, arg UpdateContactSubmissionTriageParams) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, updateContactSubmissionTriage,
		arg.Status, arg.Notes, time.Now().UTC(), arg.ID)
	return scanContact(row)
}

const deleteContactSubmission = `DELETE FROM contact_submissions WHERE id = ?`

// DeleteContactSubmission removes a submission.
func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteContactSubmission, id)
	return err
}

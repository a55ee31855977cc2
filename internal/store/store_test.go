// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blackstoneeg/website/internal/store"
	"github.com/blackstoneeg/website/internal/testutil"
)

func createContact(t *testing.T, q *store.Queries, reference, service string) store.ContactSubmission {
	t.Helper()
	sub, err := q.CreateContactSubmission(context.Background(), store.CreateContactSubmissionParams{
		Reference: reference,
		Name:      "Test Person",
		Email:     "test@example.com",
		Service:   service,
		Message:   "A message long enough to be plausible.",
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}
	return sub
}

func TestContactSubmission_Lifecycle(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	sub := createContact(t, q, "CNT-AAAA1111", "energy")

	if sub.Status != store.ContactStatusNew {
		t.Errorf("new submission status = %q, want %q", sub.Status, store.ContactStatusNew)
	}
	if sub.ID == 0 {
		t.Error("submission ID not assigned")
	}

	updated, err := q.UpdateContactSubmissionTriage(ctx, store.UpdateContactSubmissionTriageParams{
		ID:     sub.ID,
		Status: store.ContactStatusContacted,
		Notes:  "Called back on Tuesday",
	})
	if err != nil {
		t.Fatalf("UpdateContactSubmissionTriage: %v", err)
	}
	if updated.Status != store.ContactStatusContacted || updated.Notes != "Called back on Tuesday" {
		t.Errorf("triage not applied: status=%q notes=%q", updated.Status, updated.Notes)
	}

	if err := q.DeleteContactSubmission(ctx, sub.ID); err != nil {
		t.Fatalf("DeleteContactSubmission: %v", err)
	}
	if _, err := q.GetContactSubmissionByID(ctx, sub.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestListContactSubmissions_Filters(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	createContact(t, q, "CNT-AAAA0001", "energy")
	createContact(t, q, "CNT-AAAA0002", "technology")
	third := createContact(t, q, "CNT-AAAA0003", "energy")

	if _, err := q.UpdateContactSubmissionTriage(ctx, store.UpdateContactSubmissionTriageParams{
		ID:     third.ID,
		Status: store.ContactStatusClosed,
	}); err != nil {
		t.Fatalf("UpdateContactSubmissionTriage: %v", err)
	}

	// Status filter
	closed, err := q.ListContactSubmissions(ctx, store.ListContactSubmissionsParams{
		Status: store.ContactStatusClosed,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("ListContactSubmissions: %v", err)
	}
	if len(closed) != 1 || closed[0].ID != third.ID {
		t.Errorf("status filter returned %d rows", len(closed))
	}

	// Service filter
	energy, err := q.CountContactSubmissions(ctx, store.CountContactSubmissionsParams{Service: "energy"})
	if err != nil {
		t.Fatalf("CountContactSubmissions: %v", err)
	}
	if energy != 2 {
		t.Errorf("energy count = %d, want 2", energy)
	}

	// No filters returns everything, newest first
	all, err := q.ListContactSubmissions(ctx, store.ListContactSubmissionsParams{Limit: 10})
	if err != nil {
		t.Fatalf("ListContactSubmissions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("unfiltered list returned %d rows, want 3", len(all))
	}
	if all[0].ID != third.ID {
		t.Error("list should be ordered newest first")
	}
}

func TestCountContactSubmissions_Aggregates(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	createContact(t, q, "CNT-BBBB0001", "energy")
	createContact(t, q, "CNT-BBBB0002", "energy")
	createContact(t, q, "CNT-BBBB0003", "")

	byStatus, err := q.CountContactSubmissionsByStatus(ctx)
	if err != nil {
		t.Fatalf("CountContactSubmissionsByStatus: %v", err)
	}
	if byStatus[store.ContactStatusNew] != 3 {
		t.Errorf("new count = %d, want 3", byStatus[store.ContactStatusNew])
	}

	byService, err := q.CountContactSubmissionsByService(ctx)
	if err != nil {
		t.Fatalf("CountContactSubmissionsByService: %v", err)
	}
	if byService["energy"] != 2 {
		t.Errorf("energy count = %d, want 2", byService["energy"])
	}
	if _, ok := byService[""]; ok {
		t.Error("blank service should be excluded from the breakdown")
	}

	recent, err := q.CountContactSubmissionsSince(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountContactSubmissionsSince: %v", err)
	}
	if recent != 3 {
		t.Errorf("recent count = %d, want 3", recent)
	}

	none, err := q.CountContactSubmissionsSince(ctx, time.Now().UTC().Add(time.Hour))
	if err != nil {
		t.Fatalf("CountContactSubmissionsSince: %v", err)
	}
	if none != 0 {
		t.Errorf("future window count = %d, want 0", none)
	}
}

func TestBlogPost_SlugUnique(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	first, err := q.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title:     "First",
		Slug:      "duplicate-slug",
		Content:   "Body",
		Published: true,
	})
	if err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	if _, err := q.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title:   "Second",
		Slug:    "duplicate-slug",
		Content: "Body",
	}); err == nil {
		t.Fatal("duplicate slug should violate the unique constraint")
	}

	exists, err := q.BlogPostSlugExists(ctx, store.BlogPostSlugExistsParams{Slug: "duplicate-slug"})
	if err != nil {
		t.Fatalf("BlogPostSlugExists: %v", err)
	}
	if !exists {
		t.Error("BlogPostSlugExists should report the taken slug")
	}

	// The post itself is excluded during edits
	exists, err = q.BlogPostSlugExists(ctx, store.BlogPostSlugExistsParams{
		Slug:      "duplicate-slug",
		ExcludeID: first.ID,
	})
	if err != nil {
		t.Fatalf("BlogPostSlugExists: %v", err)
	}
	if exists {
		t.Error("slug check should exclude the post being edited")
	}
}

func TestGetPublishedPostBySlug_DraftsHidden(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	if _, err := q.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Title:   "Draft",
		Slug:    "draft-post",
		Content: "Not yet public",
	}); err != nil {
		t.Fatalf("CreateBlogPost: %v", err)
	}

	if _, err := q.GetPublishedPostBySlug(ctx, "draft-post"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("draft lookup should return sql.ErrNoRows, got %v", err)
	}
	if _, err := q.GetPublishedPostBySlug(ctx, "never-existed"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("missing lookup should return sql.ErrNoRows, got %v", err)
	}

	counted, err := q.CountPublishedPosts(ctx)
	if err != nil {
		t.Fatalf("CountPublishedPosts: %v", err)
	}
	if counted != 0 {
		t.Errorf("published count = %d, want 0", counted)
	}
}

func createPortfolioItem(t *testing.T, q *store.Queries, title, category, status string) store.PortfolioItem {
	t.Helper()
	item, err := q.CreatePortfolioItem(context.Background(), store.CreatePortfolioItemParams{
		Title:       title,
		Description: "Project description",
		Category:    category,
		Status:      status,
	})
	if err != nil {
		t.Fatalf("CreatePortfolioItem: %v", err)
	}
	return item
}

func TestListCompletedPortfolioItems(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	older := createPortfolioItem(t, q, "Older Energy", "energy", store.PortfolioStatusCompleted)
	createPortfolioItem(t, q, "Ongoing Energy", "energy", store.PortfolioStatusOngoing)
	createPortfolioItem(t, q, "Real Estate", "real-estate", store.PortfolioStatusCompleted)
	newer := createPortfolioItem(t, q, "Newer Energy", "energy", store.PortfolioStatusCompleted)

	// No category: all completed items, newest first
	items, err := q.ListCompletedPortfolioItems(ctx, "")
	if err != nil {
		t.Fatalf("ListCompletedPortfolioItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("completed items = %d, want 3", len(items))
	}
	if items[0].ID != newer.ID {
		t.Error("items should be ordered newest first")
	}

	// Category filter excludes other categories and non-completed statuses
	items, err = q.ListCompletedPortfolioItems(ctx, "energy")
	if err != nil {
		t.Fatalf("ListCompletedPortfolioItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("energy items = %d, want 2", len(items))
	}
	if items[0].ID != newer.ID || items[1].ID != older.ID {
		t.Error("energy items out of order")
	}

	categories, err := q.ListPortfolioCategories(ctx)
	if err != nil {
		t.Fatalf("ListPortfolioCategories: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("categories = %v, want the two completed categories", categories)
	}
}

func TestCompanySettings_Singleton(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	settings, err := q.GetCompanySettings(ctx)
	if err != nil {
		t.Fatalf("GetCompanySettings: %v", err)
	}
	if settings.ID != 1 {
		t.Errorf("settings ID = %d, want 1", settings.ID)
	}
	if settings.CompanyName != "Blackstone EG & Partners" {
		t.Errorf("default company name = %q", settings.CompanyName)
	}

	updated, err := q.UpdateCompanySettings(ctx, store.UpdateCompanySettingsParams{
		CompanyName: "Renamed Co",
		Tagline:     "New tagline",
	})
	if err != nil {
		t.Fatalf("UpdateCompanySettings: %v", err)
	}
	if updated.CompanyName != "Renamed Co" {
		t.Errorf("updated company name = %q", updated.CompanyName)
	}

	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM company_settings").Scan(&count); err != nil {
		t.Fatalf("counting settings rows: %v", err)
	}
	if count != 1 {
		t.Errorf("settings rows = %d, want exactly 1", count)
	}
}

func TestCompanySettings_ConcurrentReads(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := q.GetCompanySettings(context.Background()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent GetCompanySettings: %v", err)
	}

	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM company_settings").Scan(&count); err != nil {
		t.Fatalf("counting settings rows: %v", err)
	}
	if count != 1 {
		t.Errorf("settings rows = %d, want exactly 1", count)
	}
}

func TestUsers_CountAdmins(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	if _, err := q.CreateUser(ctx, store.CreateUserParams{
		Username: "admin", Email: "admin@example.com", PasswordHash: "x", IsAdmin: true,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := q.CreateUser(ctx, store.CreateUserParams{
		Username: "editor", Email: "editor@example.com", PasswordHash: "x",
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	admins, err := q.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if admins != 1 {
		t.Errorf("admins = %d, want 1", admins)
	}

	// Duplicate username rejected
	if _, err := q.CreateUser(ctx, store.CreateUserParams{
		Username: "admin", Email: "other@example.com", PasswordHash: "x",
	}); err == nil {
		t.Fatal("duplicate username should violate the unique constraint")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := store.Seed(ctx, db, true); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	q := store.New(db)
	users, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if users != 1 {
		t.Errorf("users after double seed = %d, want 1", users)
	}

	posts, err := q.CountBlogPosts(ctx)
	if err != nil {
		t.Fatalf("CountBlogPosts: %v", err)
	}
	if posts != 2 {
		t.Errorf("seeded posts = %d, want 2", posts)
	}
}

func TestGalleryEncoding(t *testing.T) {
	paths := []string{"/uploads/portfolio/a.png", "/uploads/portfolio/b.png"}

	encoded := store.EncodeGallery(paths)
	decoded := store.DecodeGallery(encoded)
	if len(decoded) != 2 || decoded[0] != paths[0] || decoded[1] != paths[1] {
		t.Errorf("round trip = %v, want %v", decoded, paths)
	}

	if got := store.EncodeGallery(nil); got != "[]" {
		t.Errorf("EncodeGallery(nil) = %q, want []", got)
	}
	for _, raw := range []string{"", "[]", "not json"} {
		if got := store.DecodeGallery(raw); got != nil {
			t.Errorf("DecodeGallery(%q) = %v, want nil", raw, got)
		}
	}

	item := store.PortfolioItem{GalleryImages: encoded}
	if got := item.GalleryList(); len(got) != 2 {
		t.Errorf("GalleryList size = %d, want 2", len(got))
	}
}

// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// multipartImage builds a multipart request carrying a small PNG under the
// given field and filename, returning the parsed file and header.
func multipartImage(t *testing.T, filename string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("featured_image", filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(encoded.Bytes()); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	_ = w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(MaxUploadSize); err != nil {
		t.Fatalf("parsing multipart form: %v", err)
	}

	file, header, err := req.FormFile("featured_image")
	if err != nil {
		t.Fatalf("reading form file: %v", err)
	}
	return file, header
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir)

	file, header := multipartImage(t, "Site Photo.PNG")
	defer func() { _ = file.Close() }()

	result, err := svc.SaveImage(file, header, UploadKindPortfolio)
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	if !strings.HasPrefix(result.Path, "/uploads/portfolio/") {
		t.Errorf("path = %q, want /uploads/portfolio/ prefix", result.Path)
	}

	namePattern := regexp.MustCompile(`^site-photo-\d{14}-[0-9a-f]{8}\.png$`)
	name := filepath.Base(result.Path)
	if !namePattern.MatchString(name) {
		t.Errorf("stored name %q does not match expected pattern", name)
	}

	if _, err := os.Stat(filepath.Join(dir, "portfolio", name)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	if result.ThumbnailPath == "" {
		t.Error("thumbnail path not set")
	} else if _, err := os.Stat(filepath.Join(dir, "portfolio", filepath.Base(result.ThumbnailPath))); err != nil {
		t.Errorf("thumbnail file missing: %v", err)
	}
}

func TestSaveImage_RejectsExtension(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	file, header := multipartImage(t, "script.exe")
	defer func() { _ = file.Close() }()

	if _, err := svc.SaveImage(file, header, UploadKindBlog); err == nil {
		t.Fatal("expected error for disallowed extension")
	}
}

func TestSaveImage_RejectsUnknownKind(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	file, header := multipartImage(t, "photo.png")
	defer func() { _ = file.Close() }()

	if _, err := svc.SaveImage(file, header, "secrets"); err == nil {
		t.Fatal("expected error for unknown upload kind")
	}
}

func TestDelete_RejectsTraversal(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	if err := svc.Delete("/uploads/../etc/passwd"); err == nil {
		t.Fatal("expected error for path traversal")
	}
	if err := svc.Delete("/elsewhere/file.png"); err == nil {
		t.Fatal("expected error for path outside /uploads/")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Site Photo", "site-photo"},
		{"already-clean_name", "already-clean_name"},
		{"äöü!!", ""},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

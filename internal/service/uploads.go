// Copyright (c) 2025-2026 Blackstone EG & Partners
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Upload limits
const (
	MaxUploadSize    = 16 * 1024 * 1024 // 16MB
	DefaultUploadDir = "./uploads"
	ThumbnailWidth   = 400
)

// Upload kinds map to subdirectories under the uploads dir.
const (
	UploadKindBlog      = "blog"
	UploadKindPortfolio = "portfolio"
	UploadKindLogo      = "logos"
)

// AllowedImageExtensions defines the image types that can be uploaded.
var AllowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadResult describes a stored upload.
type UploadResult struct {
	Path          string // URL path of the stored image
	ThumbnailPath string // URL path of the generated thumbnail, if any
}

// UploadService stores uploaded images on disk, one subdirectory per kind.
type UploadService struct {
	uploadDir string
}

// NewUploadService creates an upload service rooted at uploadDir.
func NewUploadService(uploadDir string) *UploadService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &UploadService{uploadDir: uploadDir}
}

// SaveImage validates and stores an uploaded image, generating a thumbnail
// alongside it. The stored name combines the sanitized original name with a
// timestamp and a short unique suffix so repeated uploads never collide.
func (s *UploadService) SaveImage(file multipart.File, header *multipart.FileHeader, kind string) (*UploadResult, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed (%d bytes)", MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !AllowedImageExtensions[ext] {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	switch kind {
	case UploadKindBlog, UploadKindPortfolio, UploadKindLogo:
	default:
		return nil, fmt.Errorf("unknown upload kind %q", kind)
	}

	dir := filepath.Join(s.uploadDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	name := storedName(header.Filename, ext)
	dst := filepath.Join(dir, name)

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return nil, fmt.Errorf("writing file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return nil, fmt.Errorf("closing file: %w", err)
	}

	result := &UploadResult{
		Path: "/uploads/" + kind + "/" + name,
	}

	// Thumbnail generation failures are not fatal, the original is stored
	if thumbName, err := s.createThumbnail(dst, dir, name); err == nil {
		result.ThumbnailPath = "/uploads/" + kind + "/" + thumbName
	}

	return result, nil
}

// Delete removes a stored upload given its URL path.
func (s *UploadService) Delete(urlPath string) error {
	rel := strings.TrimPrefix(urlPath, "/uploads/")
	if rel == urlPath || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid upload path %q", urlPath)
	}
	return os.Remove(filepath.Join(s.uploadDir, filepath.FromSlash(rel)))
}

// createThumbnail writes a width-constrained thumbnail next to the original.
func (s *UploadService) createThumbnail(srcPath, dir, name string) (string, error) {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}

	if img.Bounds().Dx() > ThumbnailWidth {
		img = imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
	}

	thumbName := thumbnailName(name)
	if err := imaging.Save(img, filepath.Join(dir, thumbName)); err != nil {
		return "", fmt.Errorf("saving thumbnail: %w", err)
	}
	return thumbName, nil
}

// storedName builds a collision-free stored filename.
func storedName(original, ext string) string {
	base := sanitizeFilename(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "upload"
	}
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%s-%s%s", base, time.Now().UTC().Format("20060102150405"), suffix, ext)
}

// thumbnailName derives the thumbnail filename from the stored name.
func thumbnailName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-thumb" + ext
}

func sanitizeFilename(filename string) string {
	filename = strings.ToLower(filename)
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

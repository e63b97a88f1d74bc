// Package media provides upload storage and image processing for article assets.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Processor writes uploaded article assets beneath a base directory and
// derives WebP thumbnails for images.
type Processor struct {
	basePath string
	maxWidth int
}

// NewProcessor creates a Processor rooted at basePath. Thumbnails are
// resized down to maxWidth pixels wide when the source is larger.
func NewProcessor(basePath string, maxWidth int) *Processor {
	return &Processor{
		basePath: basePath,
		maxWidth: maxWidth,
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename strips path components and unsafe characters so uploads
// cannot escape their target directory.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = unsafeFilenameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == ".." {
		base = "upload"
	}
	return base
}

// StoreFile writes one uploaded file as {articleID}/{kind}/{index}-{filename}
// and returns the path relative to the media root, with forward slashes.
func (p *Processor) StoreFile(articleID, kind string, index int, filename string, r io.Reader) (string, error) {
	targetDir := filepath.Join(p.basePath, articleID, kind)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	storedName := fmt.Sprintf("%d-%s", index, sanitizeFilename(filename))
	fullPath := filepath.Join(targetDir, storedName)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	relativePath := filepath.Join(articleID, kind, storedName)
	return strings.ReplaceAll(relativePath, "\\", "/"), nil
}

// StoreThumbnail writes the article thumbnail, re-encoding raster images as
// WebP resized to the configured max width. Non-raster uploads (SVG) are
// stored verbatim.
func (p *Processor) StoreThumbnail(articleID, filename string, r io.Reader) (string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".svg") {
		return p.StoreFile(articleID, "thumbnail", 0, filename, r)
	}

	img, err := imaging.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode thumbnail image: %w", err)
	}

	if img.Bounds().Dx() > p.maxWidth {
		img = imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	}

	targetDir := filepath.Join(p.basePath, articleID, "thumbnail")
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	base := sanitizeFilename(filename)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	storedName := fmt.Sprintf("0-%s.webp", base)
	fullPath := filepath.Join(targetDir, storedName)

	if err := webp.Save(fullPath, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to save WebP thumbnail: %w", err)
	}

	relativePath := filepath.Join(articleID, "thumbnail", storedName)
	return strings.ReplaceAll(relativePath, "\\", "/"), nil
}

// RemoveArticleMedia deletes every stored asset for an article.
func (p *Processor) RemoveArticleMedia(articleID string) error {
	if articleID == "" {
		return fmt.Errorf("empty article id")
	}
	dir := filepath.Join(p.basePath, sanitizeFilename(articleID))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove article media: %w", err)
	}
	return nil
}

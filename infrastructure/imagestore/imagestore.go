// Package imagestore enumerates and decodes the images to annotate.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"framer-go/infrastructure/logging"

	// Register decoders beyond the standard library.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoImages is returned when a directory contains no supported images.
var ErrNoImages = errors.New("no images found")

// DefaultExtensions lists the file extensions recognized as images.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Source is an ordered set of readable images.
type Source interface {
	// List returns image names in a stable order.
	List(ctx context.Context) ([]string, error)

	// Open decodes the named image.
	Open(ctx context.Context, name string) (image.Image, error)
}

// DirSource reads images from a directory, ordered lexicographically by filename.
type DirSource struct {
	dir        string
	extensions map[string]bool
	logger     *slog.Logger
}

// NewDirSource creates a source over dir. Files whose extension is not in
// extensions (case-insensitive) are skipped; nil means DefaultExtensions.
func NewDirSource(dir string, extensions []string, logger *slog.Logger) *DirSource {
	if extensions == nil {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = slog.Default()
	}
	ext := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		ext[strings.ToLower(e)] = true
	}
	return &DirSource{
		dir:        dir,
		extensions: ext,
		logger:     logger.With("component", "imagestore", "dir", dir),
	}
}

// List returns the regular image files in the directory.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !s.extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			s.logger.Debug("Skipping non-image file", "file", entry.Name())
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", s.dir, ErrNoImages)
	}

	sort.Strings(names)
	s.logger.Info("Images listed", "count", len(names))
	return names, nil
}

// Open decodes the named image, applying EXIF orientation.
func (s *DirSource) Open(ctx context.Context, name string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Open(filepath.Join(s.dir, name), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", name, err)
	}
	b := img.Bounds()
	logging.From(ctx).Debug("Image decoded", "file", name, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// Resize scales img to width x height with a Lanczos filter. The image is
// returned unchanged when it already has that size.
func Resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

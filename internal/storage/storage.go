// Package storage keeps uploaded images on local disk, one directory per
// bucket, and hands back the public URL each stored object is served from.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var (
	// ErrNotImage indicates the uploaded bytes are not an image
	ErrNotImage = errors.New("file is not an image")
	// ErrTooLarge indicates the upload exceeds the configured maximum size
	ErrTooLarge = errors.New("file exceeds the maximum allowed size")
)

const (
	// DefaultMaxSize is the upload size cap when none is configured (1 MiB)
	DefaultMaxSize = 1 << 20

	// maxDimension is the longest edge kept when re-encoding large images
	maxDimension = 1200
	jpegQuality  = 85
)

// Object describes a stored file
type Object struct {
	Bucket string `json:"bucket"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Size   int64  `json:"size"`
}

// Store writes validated images under baseDir and serves them under baseURL
type Store struct {
	baseDir string
	baseURL string
	maxSize int64
}

// NewStore creates a Store. maxSize <= 0 falls back to DefaultMaxSize.
func NewStore(baseDir, baseURL string, maxSize int64) *Store {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Store{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}
}

// SaveImage validates and stores one uploaded image. The MIME type is
// sniffed from the content and checked before the size cap. Images larger
// than maxDimension on their longest edge are downscaled and re-encoded as
// JPEG before hitting disk. Nothing is written on failure.
func (s *Store) SaveImage(bucket, filename string, r io.Reader) (*Object, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionFor(contentType)
	}

	// Downscale oversized images; undecodable but sniffed-as-image formats
	// are stored as-is.
	if img, decodeErr := imaging.Decode(bytes.NewReader(data)); decodeErr == nil {
		bounds := img.Bounds()
		if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
			img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
			var buf bytes.Buffer
			if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
				return nil, fmt.Errorf("failed to re-encode image: %w", err)
			}
			data = buf.Bytes()
			ext = ".jpg"
		}
	}

	name := uuid.New().String() + ext
	dir := filepath.Join(s.baseDir, filepath.Base(bucket))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	return &Object{
		Bucket: bucket,
		Name:   name,
		URL:    s.PublicURL(bucket, name),
		Size:   int64(len(data)),
	}, nil
}

// Remove deletes a stored object, releasing its public URL
func (s *Store) Remove(bucket, name string) error {
	target := filepath.Join(s.baseDir, filepath.Base(bucket), filepath.Base(name))
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// PublicURL returns the URL a stored object is served from
func (s *Store) PublicURL(bucket, name string) string {
	return s.baseURL + "/" + path.Join(path.Base(bucket), path.Base(name))
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}

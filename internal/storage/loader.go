package storage

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	apperrors "go-ocr-compare/internal/errors"
)

// Object is one loaded image: the raw encoded bytes as fetched plus the
// decoded raster. Both are kept because the OCR engines consume encoded
// bytes while preprocessing and overlay rendering consume the raster.
type Object struct {
	Locator string
	Bytes   []byte
	Image   image.Image
	Format  string
}

// Fetcher returns the raw bytes behind a locator. One implementation exists
// per locator scheme.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Loader resolves a locator to a decoded image by dispatching on its scheme.
type Loader struct {
	fetchers map[string]Fetcher
}

// NewLoader builds a loader over the given scheme → fetcher table. Local
// files are always supported; remaining schemes depend on configuration.
func NewLoader(fetchers map[string]Fetcher) *Loader {
	table := map[string]Fetcher{"file": NewFileFetcher()}
	for scheme, f := range fetchers {
		table[scheme] = f
	}
	return &Loader{fetchers: table}
}

// Scheme extracts the locator scheme; bare paths count as local files.
func Scheme(locator string) string {
	if i := strings.Index(locator, "://"); i > 0 {
		return strings.ToLower(locator[:i])
	}
	return "file"
}

// Load fetches and decodes the image behind the locator.
func (l *Loader) Load(ctx context.Context, locator string) (*Object, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, apperrors.NewValidationError("image locator cannot be empty", nil)
	}

	scheme := Scheme(locator)
	fetcher, ok := l.fetchers[scheme]
	if !ok {
		return nil, apperrors.NewValidationError("unsupported locator scheme: "+scheme, nil)
	}

	data, err := fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to decode image", err)
	}

	return &Object{Locator: locator, Bytes: data, Image: img, Format: format}, nil
}

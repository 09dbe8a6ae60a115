package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"

	apperrors "go-ocr-compare/internal/errors"
)

// GCSFetcher reads images from Google Cloud Storage. Locators use the form
// gs://bucket/path/to/object. Credentials are resolved by the client library
// from the environment.
type GCSFetcher struct {
	client *gcs.Client
}

func NewGCSFetcher(ctx context.Context) (*GCSFetcher, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSFetcher{client: client}, nil
}

func (s *GCSFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	bucket, object, err := parseGCSLocator(locator)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid object locator", err)
	}

	r, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) || errors.Is(err, gcs.ErrBucketNotExist) {
			return nil, apperrors.NewNotFoundError("object not found: "+locator, err)
		}
		return nil, apperrors.NewNetworkError("object read failed: "+locator, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read object body", err)
	}
	return data, nil
}

func parseGCSLocator(locator string) (bucket, object string, err error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", "", err
	}
	bucket = u.Host
	object = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("locator must be gs://bucket/object, got %q", locator)
	}
	return bucket, object, nil
}

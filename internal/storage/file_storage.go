package storage

import (
	"context"
	"os"
	"strings"

	apperrors "go-ocr-compare/internal/errors"
)

// FileFetcher reads images from the local filesystem. Locators may be bare
// paths or file:// URIs.
type FileFetcher struct{}

func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

func (f *FileFetcher) Fetch(_ context.Context, locator string) ([]byte, error) {
	path := strings.TrimPrefix(locator, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("image file not found: "+path, err)
		}
		return nil, apperrors.NewInternalError("failed to read image file", err)
	}
	return data, nil
}

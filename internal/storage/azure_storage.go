package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-ocr-compare/internal/errors"
)

// AzureFetcher reads images from Azure blob storage. Locators use the form
// az://container/path/to/blob.
type AzureFetcher struct {
	client *azblob.Client
}

func NewAzureFetcher(accountName, accountKey string) (*AzureFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return &AzureFetcher{client: client}, nil
}

func (s *AzureFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	container, blob, err := parseAzureLocator(locator)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid blob locator", err)
	}

	resp, err := s.client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		return nil, apperrors.NewNotFoundError("blob download failed: "+locator, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to read blob body", err)
	}
	return data, nil
}

func parseAzureLocator(locator string) (container, blob string, err error) {
	u, err := url.Parse(locator)
	if err != nil {
		return "", "", err
	}
	container = u.Host
	blob = strings.TrimPrefix(u.Path, "/")
	if container == "" || blob == "" {
		return "", "", fmt.Errorf("locator must be az://container/blob, got %q", locator)
	}
	return container, blob, nil
}

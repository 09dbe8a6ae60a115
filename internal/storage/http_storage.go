package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "go-ocr-compare/internal/errors"
)

const httpFetchAttempts = 3

// HTTPFetcher downloads images over HTTP(S). Server errors are retried with
// a linear backoff; client errors are not.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

func (h *HTTPFetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid image URL", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, */*")
	req.Header.Set("User-Agent", "go-ocr-compare/1.0")

	var lastErr error
	for attempt := 0; attempt < httpFetchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, apperrors.NewTimeoutError("image fetch canceled", ctx.Err())
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			data, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return nil, apperrors.NewNetworkError("failed to read image body", readErr)
			}
			return data, nil
		case resp.StatusCode == http.StatusNotFound:
			resp.Body.Close()
			return nil, apperrors.NewNotFoundError("image not found: "+locator, nil)
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			resp.Body.Close()
			return nil, apperrors.NewNetworkError(fmt.Sprintf("client error: status code %d", resp.StatusCode), nil)
		default:
			// 5xx is retryable.
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
		}
	}

	return nil, apperrors.NewNetworkError(
		fmt.Sprintf("failed to fetch image after %d attempts", httpFetchAttempts), lastErr)
}

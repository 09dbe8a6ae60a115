package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "go-ocr-compare/internal/errors"
)

func TestHTTPFetcherSuccess(t *testing.T) {
	body := []byte("fake image bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)

	data, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != string(body) {
		t.Errorf("Fetch() = %q, want %q", data, body)
	}
}

func TestHTTPFetcherNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestHTTPFetcherClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5 * time.Second)

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1", got)
	}
}

func TestHTTPFetcherRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(10 * time.Second)

	data, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "recovered" {
		t.Errorf("Fetch() = %q, want %q", data, "recovered")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("server called %d times, want 2", got)
	}
}

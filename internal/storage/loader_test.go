package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	apperrors "go-ocr-compare/internal/errors"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 4; i++ {
		img.Set(i, i, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

type stubFetcher struct {
	data []byte
	err  error
}

func (s *stubFetcher) Fetch(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

func TestScheme(t *testing.T) {
	tests := []struct {
		locator  string
		expected string
	}{
		{"/tmp/sample.png", "file"},
		{"file:///tmp/sample.png", "file"},
		{"https://example.com/a.png", "https"},
		{"HTTP://example.com/a.png", "http"},
		{"az://receipts/2024/scan.png", "az"},
		{"gs://bucket/key.png", "gs"},
		{"relative/path.png", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			if got := Scheme(tt.locator); got != tt.expected {
				t.Errorf("Scheme(%q) = %q, want %q", tt.locator, got, tt.expected)
			}
		})
	}
}

func TestLoaderDispatchesOnScheme(t *testing.T) {
	loader := NewLoader(map[string]Fetcher{
		"stub": &stubFetcher{data: encodePNG(t)},
	})

	obj, err := loader.Load(context.Background(), "stub://anything")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if obj.Format != "png" {
		t.Errorf("Format = %q, want png", obj.Format)
	}
	if obj.Image.Bounds().Dx() != 4 {
		t.Errorf("decoded width = %d, want 4", obj.Image.Bounds().Dx())
	}
	if len(obj.Bytes) == 0 {
		t.Error("raw bytes not retained")
	}
}

func TestLoaderRejectsUnknownScheme(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(context.Background(), "ftp://host/a.png")
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoaderRejectsEmptyLocator(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.Load(context.Background(), "  ")
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLoaderUndecodableBytes(t *testing.T) {
	loader := NewLoader(map[string]Fetcher{
		"stub": &stubFetcher{data: []byte("definitely not an image")},
	})

	_, err := loader.Load(context.Background(), "stub://broken")
	if !apperrors.IsType(err, apperrors.ErrorTypeProcessing) {
		t.Errorf("expected processing error, got %v", err)
	}
}

func TestLoaderLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.png")
	if err := os.WriteFile(path, encodePNG(t), 0o644); err != nil {
		t.Fatalf("write temp image: %v", err)
	}

	loader := NewLoader(nil)

	obj, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if obj.Format != "png" {
		t.Errorf("Format = %q, want png", obj.Format)
	}

	_, err = loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestParseAzureLocator(t *testing.T) {
	container, blob, err := parseAzureLocator("az://receipts/2024/scan.png")
	if err != nil {
		t.Fatalf("parseAzureLocator() error = %v", err)
	}
	if container != "receipts" || blob != "2024/scan.png" {
		t.Errorf("parsed %q/%q", container, blob)
	}

	if _, _, err := parseAzureLocator("az://onlycontainer"); err == nil {
		t.Error("expected error for locator without blob path")
	}
}

func TestParseGCSLocator(t *testing.T) {
	bucket, object, err := parseGCSLocator("gs://images/in/deep/key.jpg")
	if err != nil {
		t.Fatalf("parseGCSLocator() error = %v", err)
	}
	if bucket != "images" || object != "in/deep/key.jpg" {
		t.Errorf("parsed %q/%q", bucket, object)
	}

	if _, _, err := parseGCSLocator("gs:///nokey"); err == nil {
		t.Error("expected error for locator without bucket")
	}
}

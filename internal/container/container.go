// Package container wires the application dependency graph.
package container

import (
	"context"
	"fmt"
	"net/http"

	"go-ocr-compare/internal/compare"
	"go-ocr-compare/internal/config"
	"go-ocr-compare/internal/logger"
	"go-ocr-compare/internal/ocr"
	"go-ocr-compare/internal/ocr/tesseract"
	"go-ocr-compare/internal/ocr/vision"
	"go-ocr-compare/internal/storage"
	"go-ocr-compare/internal/transport"
	"go-ocr-compare/pkg/validation"
)

// Container holds all application dependencies.
type Container struct {
	config        *config.Config
	loader        *storage.Loader
	validator     *validation.LocatorValidator
	engines       []ocr.Engine
	visionEngines []*vision.Engine
	service       compare.Service
	handler       http.Handler
}

// NewContainer builds the dependency graph: locator fetchers, the engine
// roster, the comparison service and the HTTP handler. Engine order fixes the
// report's run order.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{config: cfg}

	fetchers := map[string]storage.Fetcher{
		"http":  storage.NewHTTPFetcher(cfg.ImageFetchTimeout),
		"https": storage.NewHTTPFetcher(cfg.ImageFetchTimeout),
	}
	if cfg.AzureConfigured() {
		azure, err := storage.NewAzureFetcher(cfg.AzureStorageAccount, cfg.AzureStorageKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize azure fetcher: %w", err)
		}
		fetchers["az"] = azure
	}
	// GCS credentials come from the ambient environment; gs:// locators stay
	// unavailable when the client cannot be built.
	if gcs, err := storage.NewGCSFetcher(ctx); err != nil {
		logger.WithError(err).Warn("GCS fetcher unavailable, gs:// locators disabled")
	} else {
		fetchers["gs"] = gcs
	}
	c.loader = storage.NewLoader(fetchers)
	c.validator = validation.NewLocatorValidator()

	for _, preset := range tesseract.ComparisonPresets() {
		c.engines = append(c.engines, tesseract.NewEngine(preset))
	}
	if cfg.VisionEnabled {
		for _, mode := range vision.ComparisonModes() {
			engine, err := vision.NewEngine(ctx, mode)
			if err != nil {
				c.Close()
				return nil, fmt.Errorf("failed to initialize vision engine %q: %w", mode, err)
			}
			c.visionEngines = append(c.visionEngines, engine)
			c.engines = append(c.engines, engine)
		}
	}

	c.service = compare.NewService(c.loader, c.validator, c.engines, cfg.Languages, cfg.RecognitionTimeout)
	c.handler = transport.NewHandler(c.service, cfg)
	return c, nil
}

// Handler returns the HTTP handler.
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the comparison service.
func (c *Container) Service() compare.Service {
	return c.service
}

// Close stops the comparison workers and releases the remote engine
// connections.
func (c *Container) Close() error {
	if c.service != nil {
		c.service.Close()
	}
	var firstErr error
	for _, e := range c.visionEngines {
		if err := e.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

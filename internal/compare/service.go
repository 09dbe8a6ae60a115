// Package compare orchestrates the side-by-side evaluation of OCR engine
// configurations over a single image.
package compare

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "go-ocr-compare/internal/errors"
	"go-ocr-compare/internal/logger"
	"go-ocr-compare/internal/ocr"
	"go-ocr-compare/internal/overlay"
	"go-ocr-compare/internal/preprocess"
	"go-ocr-compare/internal/storage"
	"go-ocr-compare/pkg/models"
	"go-ocr-compare/pkg/validation"
)

// Request selects what to compare and how.
type Request struct {
	// Locator resolves to the input image (file path, URL, az:// or gs://).
	Locator string `json:"locator" binding:"required"`
	// Level is the hierarchy level rendered and listed; defaults to word.
	Level string `json:"level,omitempty"`
	// Binarize toggles Otsu preprocessing before recognition.
	Binarize bool `json:"binarize,omitempty"`
	// Languages overrides the configured language hints.
	Languages []string `json:"languages,omitempty"`
	// Engines restricts the comparison to the named runs (engine names as
	// reported by each engine, e.g. "tesseract/sparse-text"). Empty means
	// every registered run.
	Engines []string `json:"engines,omitempty"`
}

// Service runs the comparison.
type Service interface {
	Compare(ctx context.Context, req Request) (*models.ComparisonReport, error)
	Runs() []string
	Close()
}

type service struct {
	loader           *storage.Loader
	validator        *validation.LocatorValidator
	engines          []ocr.Engine
	pool             *WorkerPool
	defaultLanguages []string
	recognitionTO    time.Duration
}

// NewService wires the comparison service over the registered engines. The
// engine slice order fixes the report's run order.
func NewService(
	loader *storage.Loader,
	validator *validation.LocatorValidator,
	engines []ocr.Engine,
	defaultLanguages []string,
	recognitionTimeout time.Duration,
) Service {
	pool := NewWorkerPool(len(engines))
	pool.Start()
	return &service{
		loader:           loader,
		validator:        validator,
		engines:          engines,
		pool:             pool,
		defaultLanguages: defaultLanguages,
		recognitionTO:    recognitionTimeout,
	}
}

// Close stops the worker pool.
func (s *service) Close() {
	s.pool.Close()
}

// Runs lists the registered engine run names in report order.
func (s *service) Runs() []string {
	names := make([]string, 0, len(s.engines))
	for _, e := range s.engines {
		names = append(names, e.Name())
	}
	return names
}

func (s *service) Compare(ctx context.Context, req Request) (*models.ComparisonReport, error) {
	start := time.Now()

	if err := s.validator.ValidateLocator(req.Locator); err != nil {
		return nil, err
	}

	level := ocr.LevelWord
	if req.Level != "" {
		parsed, ok := ocr.ParseLevel(req.Level)
		if !ok {
			return nil, apperrors.NewValidationError("unknown hierarchy level: "+req.Level, nil)
		}
		level = parsed
	}

	engines, err := s.selectEngines(req.Engines)
	if err != nil {
		return nil, err
	}

	obj, err := s.loader.Load(ctx, req.Locator)
	if err != nil {
		return nil, err
	}

	raster := obj.Image
	encoded := obj.Bytes
	if req.Binarize {
		raster = preprocess.Binarize(obj.Image)
		encoded, err = encodePNG(raster)
		if err != nil {
			return nil, apperrors.NewProcessingError("failed to encode binarized image", err)
		}
	}

	languages := req.Languages
	if len(languages) == 0 {
		languages = s.defaultLanguages
	}
	input := ocr.Input{Image: encoded, Format: ocr.ImageFormatPNG, Languages: languages}
	if !req.Binarize && obj.Format == "jpeg" {
		input.Format = ocr.ImageFormatJPEG
	}

	logger.WithFields(logrus.Fields{
		"locator":  req.Locator,
		"level":    level.String(),
		"binarize": req.Binarize,
		"runs":     len(engines),
	}).Info("Starting engine comparison")

	results := make([]models.RunResult, len(engines))
	errs := make([]error, len(engines))
	for i, engine := range engines {
		i, engine := i, engine
		s.pool.Submit(func() {
			results[i], errs[i] = s.runOne(ctx, engine, input, raster, level)
		})
	}
	s.pool.Wait()

	for i, runErr := range errs {
		// No fallback between engines: the first failed run aborts the
		// whole comparison.
		if runErr != nil {
			logger.WithError(runErr).WithField("run", engines[i].Name()).Error("Engine run failed")
			return nil, runErr
		}
	}

	report := &models.ComparisonReport{
		Locator:   req.Locator,
		Level:     level.String(),
		Binarized: req.Binarize,
		Timestamp: start.UTC().Format(time.RFC3339),
		Runs:      results,
	}
	report.Agreement = pairwiseAgreement(results)
	report.ProcessingTimeSec = time.Since(start).Seconds()

	logger.WithFields(logrus.Fields{
		"locator":            req.Locator,
		"runs":               len(results),
		"processing_time_ms": time.Since(start).Milliseconds(),
	}).Info("Engine comparison completed")

	return report, nil
}

func (s *service) selectEngines(names []string) ([]ocr.Engine, error) {
	if len(names) == 0 {
		return s.engines, nil
	}
	var selected []ocr.Engine
	for _, name := range names {
		found := false
		for _, e := range s.engines {
			if strings.EqualFold(e.Name(), name) {
				selected = append(selected, e)
				found = true
				break
			}
		}
		if !found {
			return nil, apperrors.NewValidationError("unknown engine run: "+name, nil)
		}
	}
	return selected, nil
}

func (s *service) runOne(
	ctx context.Context,
	engine ocr.Engine,
	input ocr.Input,
	raster image.Image,
	level ocr.Level,
) (models.RunResult, error) {
	runStart := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, s.recognitionTO)
	defer cancel()

	doc, err := engine.Recognize(runCtx, input)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return models.RunResult{}, apperrors.NewTimeoutError("recognition timed out: "+engine.Name(), err)
		}
		// Engines classify their own failures (credentials, quota); keep
		// that classification instead of re-wrapping.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return models.RunResult{}, err
		}
		return models.RunResult{}, apperrors.NewProcessingError("recognition failed: "+engine.Name(), err)
	}

	nodes := doc.NodesAt(level)
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, strings.TrimRight(n.Text, " \n"))
	}

	annotated := overlay.Annotate(raster, nodes, overlay.DefaultOptions())
	annotatedPNG, err := encodePNG(annotated)
	if err != nil {
		return models.RunResult{}, apperrors.NewProcessingError("failed to encode overlay", err)
	}

	return models.RunResult{
		Engine:       doc.Engine,
		Config:       doc.Config,
		Name:         engine.Name(),
		FullText:     strings.TrimSpace(doc.Text),
		Confidence:   doc.Confidence,
		Level:        level.String(),
		Nodes:        nodes,
		NodeTexts:    texts,
		AnnotatedPNG: annotatedPNG,
		DurationSec:  time.Since(runStart).Seconds(),
	}, nil
}

// pairwiseAgreement scores every run pair; the earlier run of each pair is
// the reference.
func pairwiseAgreement(runs []models.RunResult) []models.Agreement {
	var scores []models.Agreement
	for i := 0; i < len(runs); i++ {
		for j := i + 1; j < len(runs); j++ {
			scores = append(scores, models.Agreement{
				Reference:     runs[i].Name,
				Hypothesis:    runs[j].Name,
				WordErrorRate: WordErrorRate(runs[i].FullText, runs[j].FullText),
				CharErrorRate: CharErrorRate(runs[i].FullText, runs[j].FullText),
			})
		}
	}
	return scores
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

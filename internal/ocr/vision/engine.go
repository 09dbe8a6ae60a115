// Package vision implements the cloud OCR engine on the Cloud Vision image
// annotator. Credentials are resolved by the client library from the
// environment (GOOGLE_APPLICATION_CREDENTIALS); this package never reads
// credential material itself.
package vision

import (
	"context"
	"errors"
	"fmt"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "go-ocr-compare/internal/errors"
	"go-ocr-compare/internal/ocr"
)

// Mode selects which detection variant the engine requests. The two variants
// are compared against each other on the same image: general text detection
// versus dense-document detection.
type Mode string

const (
	ModeText         Mode = "text"
	ModeDocumentText Mode = "document-text"
)

// ComparisonModes are the endpoint variants run by default.
func ComparisonModes() []Mode {
	return []Mode{ModeText, ModeDocumentText}
}

func (m Mode) feature() visionpb.Feature_Type {
	if m == ModeDocumentText {
		return visionpb.Feature_DOCUMENT_TEXT_DETECTION
	}
	return visionpb.Feature_TEXT_DETECTION
}

// Engine runs Cloud Vision text detection under one fixed endpoint variant.
type Engine struct {
	client *vision.ImageAnnotatorClient
	mode   Mode
}

// NewEngine dials the annotator endpoint. Close must be called when the
// engine is no longer needed.
func NewEngine(ctx context.Context, mode Mode) (*Engine, error) {
	switch mode {
	case ModeText, ModeDocumentText:
	default:
		return nil, fmt.Errorf("unknown vision mode: %q", mode)
	}
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return &Engine{client: client, mode: mode}, nil
}

func (e *Engine) Name() string { return "vision/" + string(e.mode) }

func (e *Engine) Close() error { return e.client.Close() }

// Recognize submits the encoded image with the configured detection feature
// and converts the returned full-text annotation of the first page into the
// neutral hierarchy.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (*ocr.Document, error) {
	var ictx *visionpb.ImageContext
	if len(in.Languages) > 0 {
		ictx = &visionpb.ImageContext{LanguageHints: in.Languages}
	}

	op := string(e.mode) + " detection"
	resp, err := e.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:        &visionpb.Image{Content: in.Image},
			Features:     []*visionpb.Feature{{Type: e.mode.feature()}},
			ImageContext: ictx,
		}},
	})
	if err != nil {
		return nil, classifyRemoteError(op, err)
	}
	if len(resp.GetResponses()) == 0 {
		return nil, apperrors.NewProcessingError(op+" returned no responses", nil)
	}
	result := resp.GetResponses()[0]
	if respErr := result.GetError(); respErr != nil {
		return nil, classifyStatusCode(op, codes.Code(respErr.GetCode()), errors.New(respErr.GetMessage()))
	}

	doc := Convert(result.GetFullTextAnnotation())
	doc.Engine = "vision"
	doc.Config = string(e.mode)
	return doc, nil
}

// classifyRemoteError maps an annotator call failure onto the error taxonomy
// so credential and quota failures keep their own status codes instead of
// collapsing into a generic processing error.
func classifyRemoteError(op string, err error) error {
	return classifyStatusCode(op, status.Code(err), err)
}

func classifyStatusCode(op string, c codes.Code, err error) error {
	switch c {
	case codes.Unauthenticated, codes.PermissionDenied:
		return apperrors.NewUnauthorizedError(op+" rejected: check credentials", err)
	case codes.ResourceExhausted:
		return apperrors.NewQuotaError(op+" quota exhausted", err)
	case codes.DeadlineExceeded:
		return apperrors.NewTimeoutError(op+" timed out", err)
	default:
		return apperrors.NewNetworkError(op+" failed", err)
	}
}

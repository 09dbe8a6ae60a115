package models

import (
	"go-ocr-compare/internal/ocr"
)

// RunResult is the outcome of one engine/configuration pair over the input
// image: the recognized text at the requested hierarchy level, the node
// geometry, and an annotated copy of the image with the boxes drawn on.
type RunResult struct {
	Engine     string  `json:"engine"`
	Config     string  `json:"config"`
	Name       string  `json:"name"`
	FullText   string  `json:"full_text"`
	Confidence float64 `json:"confidence"`

	Level     string     `json:"level"`
	Nodes     []ocr.Node `json:"nodes"`
	NodeTexts []string   `json:"node_texts"`

	// AnnotatedPNG is the overlay rendering, base64-encoded in JSON.
	AnnotatedPNG []byte `json:"annotated_png,omitempty"`

	DurationSec float64 `json:"duration_sec"`
}

// Agreement scores one pair of runs against each other. The first run of the
// pair acts as the reference for both rates.
type Agreement struct {
	Reference     string  `json:"reference"`
	Hypothesis    string  `json:"hypothesis"`
	WordErrorRate float64 `json:"word_error_rate"`
	CharErrorRate float64 `json:"char_error_rate"`
}

// ComparisonReport is the full side-by-side comparison of every engine
// configuration that ran over one image.
type ComparisonReport struct {
	Locator           string      `json:"locator"`
	Level             string      `json:"level"`
	Binarized         bool        `json:"binarized"`
	Timestamp         string      `json:"timestamp"`
	ProcessingTimeSec float64     `json:"processing_time_sec"`
	Runs              []RunResult `json:"runs"`
	Agreement         []Agreement `json:"agreement,omitempty"`
}

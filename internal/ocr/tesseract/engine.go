// Package tesseract implements the local OCR engine on the gosseract client.
// It requires the Tesseract library to be installed on the system.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"go-ocr-compare/internal/ocr"
)

// Preset selects the page segmentation hint applied to a run. Presets are
// compared against each other over the same image, so each carries its own
// engine instance and no state is shared between them.
type Preset string

const (
	PresetAuto         Preset = "auto"
	PresetSingleBlock  Preset = "single-block"
	PresetSparseText   Preset = "sparse-text"
	PresetSingleColumn Preset = "single-column"
)

// ComparisonPresets are the segmentation modes run by default when comparing
// against the cloud engine.
func ComparisonPresets() []Preset {
	return []Preset{PresetSingleBlock, PresetSparseText, PresetSingleColumn}
}

func (p Preset) pageSegMode() (gosseract.PageSegMode, error) {
	switch p {
	case PresetAuto, "":
		return gosseract.PSM_AUTO, nil
	case PresetSingleBlock:
		return gosseract.PSM_SINGLE_BLOCK, nil
	case PresetSparseText:
		return gosseract.PSM_SPARSE_TEXT, nil
	case PresetSingleColumn:
		return gosseract.PSM_SINGLE_COLUMN, nil
	default:
		return 0, fmt.Errorf("unknown page segmentation preset: %q", p)
	}
}

// Engine runs Tesseract under one fixed page segmentation preset.
type Engine struct {
	preset        Preset
	clientFactory func() *gosseract.Client
}

// NewEngine constructs a Tesseract-backed engine for the given preset.
func NewEngine(preset Preset) *Engine {
	return &Engine{preset: preset, clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string {
	if e.preset == "" {
		return "tesseract/" + string(PresetAuto)
	}
	return "tesseract/" + string(e.preset)
}

// resultLevels maps hierarchy levels onto Tesseract page iterator levels.
// Symbols are omitted: the client does not expose per-symbol break flags, so
// word granularity is the finest the local engine reports.
var resultLevels = []struct {
	level ocr.Level
	ril   gosseract.PageIteratorLevel
}{
	{ocr.LevelBlock, gosseract.RIL_BLOCK},
	{ocr.LevelParagraph, gosseract.RIL_PARA},
	{ocr.LevelLine, gosseract.RIL_TEXTLINE},
	{ocr.LevelWord, gosseract.RIL_WORD},
}

// Recognize submits the image to a fresh client and builds the hierarchical
// document from the per-level bounding boxes.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (*ocr.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	mode, err := e.preset.pageSegMode()
	if err != nil {
		return nil, err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(mode); err != nil {
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	levels := ocr.LevelBoxes{}
	for _, rl := range resultLevels {
		boxes, err := c.GetBoundingBoxes(rl.ril)
		if err != nil {
			return nil, fmt.Errorf("bounding boxes at %s: %w", rl.level, err)
		}
		for _, b := range boxes {
			levels[rl.level] = append(levels[rl.level], ocr.TextBox{
				Text:       b.Word,
				Box:        ocr.NewRect(b.Box.Min.X, b.Box.Min.Y, b.Box.Max.X, b.Box.Max.Y),
				Confidence: b.Confidence,
			})
		}
	}

	doc := ocr.BuildDocument(levels)
	doc.Engine = "tesseract"
	doc.Config = string(e.preset)
	if doc.Config == "" {
		doc.Config = string(PresetAuto)
	}
	if plain := strings.TrimSpace(text); plain != "" {
		doc.Text = plain
	}
	return doc, nil
}

package tesseract

import (
	"testing"

	"github.com/otiai10/gosseract/v2"
)

func TestPresetPageSegMode(t *testing.T) {
	tests := []struct {
		preset   Preset
		expected gosseract.PageSegMode
		wantErr  bool
	}{
		{PresetAuto, gosseract.PSM_AUTO, false},
		{Preset(""), gosseract.PSM_AUTO, false},
		{PresetSingleBlock, gosseract.PSM_SINGLE_BLOCK, false},
		{PresetSparseText, gosseract.PSM_SPARSE_TEXT, false},
		{PresetSingleColumn, gosseract.PSM_SINGLE_COLUMN, false},
		{Preset("osd-only"), 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			mode, err := tt.preset.pageSegMode()
			if (err != nil) != tt.wantErr {
				t.Fatalf("pageSegMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && mode != tt.expected {
				t.Errorf("pageSegMode() = %v, want %v", mode, tt.expected)
			}
		})
	}
}

func TestEngineName(t *testing.T) {
	if got := NewEngine(PresetSparseText).Name(); got != "tesseract/sparse-text" {
		t.Errorf("Name() = %q", got)
	}
	if got := NewEngine("").Name(); got != "tesseract/auto" {
		t.Errorf("Name() for empty preset = %q", got)
	}
}

func TestComparisonPresetsAreDistinct(t *testing.T) {
	seen := map[Preset]bool{}
	for _, p := range ComparisonPresets() {
		if seen[p] {
			t.Fatalf("duplicate preset %q", p)
		}
		seen[p] = true
		if _, err := p.pageSegMode(); err != nil {
			t.Errorf("preset %q has no segmentation mode: %v", p, err)
		}
	}
}

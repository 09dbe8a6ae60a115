package compare

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWordErrorRate(t *testing.T) {
	tests := []struct {
		name     string
		ref, hyp string
		expected float64
	}{
		{"Identical", "the quick brown fox", "the quick brown fox", 0},
		{"Both empty", "", "", 0},
		{"Empty reference", "", "something", 1},
		{"One substitution", "the quick brown fox", "the quick brawn fox", 0.25},
		{"One deletion", "the quick brown fox", "the quick fox", 0.25},
		{"One insertion", "the quick fox", "the quick brown fox", 1.0 / 3.0},
		{"Whitespace only differs", "hello  world", "hello world", 0},
		{"Everything wrong", "a b", "c d", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordErrorRate(tt.ref, tt.hyp); !almostEqual(got, tt.expected) {
				t.Errorf("WordErrorRate(%q, %q) = %v, want %v", tt.ref, tt.hyp, got, tt.expected)
			}
		})
	}
}

func TestCharErrorRate(t *testing.T) {
	tests := []struct {
		name     string
		ref, hyp string
		expected float64
	}{
		{"Identical", "invoice", "invoice", 0},
		{"Both empty", "", "", 0},
		{"Empty reference", "", "x", 1},
		{"One edit", "invoice", "invoise", 1.0 / 7.0},
		{"Surrounding whitespace ignored", " invoice \n", "invoice", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CharErrorRate(tt.ref, tt.hyp); !almostEqual(got, tt.expected) {
				t.Errorf("CharErrorRate(%q, %q) = %v, want %v", tt.ref, tt.hyp, got, tt.expected)
			}
		})
	}
}

func TestWordDistance(t *testing.T) {
	tests := []struct {
		ref, hyp []string
		expected int
	}{
		{[]string{"a", "b", "c"}, []string{"a", "b", "c"}, 0},
		{[]string{"a", "b", "c"}, []string{"a", "c"}, 1},
		{[]string{"a"}, []string{"x", "y"}, 2},
		{nil, []string{"x"}, 1},
		{[]string{"x"}, nil, 1},
	}

	for _, tt := range tests {
		if got := wordDistance(tt.ref, tt.hyp); got != tt.expected {
			t.Errorf("wordDistance(%v, %v) = %d, want %d", tt.ref, tt.hyp, got, tt.expected)
		}
	}
}

package ocr

import (
	"strings"
	"testing"
)

func TestBuildDocumentNestsByContainment(t *testing.T) {
	// Two lines inside one paragraph inside one block, two words per line.
	levels := LevelBoxes{
		LevelBlock:     {{Box: NewRect(0, 0, 200, 100)}},
		LevelParagraph: {{Box: NewRect(0, 0, 200, 100)}},
		LevelLine: {
			{Box: NewRect(0, 0, 200, 40)},
			{Box: NewRect(0, 50, 200, 90)},
		},
		LevelWord: {
			{Text: "hello", Box: NewRect(0, 5, 80, 35), Confidence: 90},
			{Text: "world", Box: NewRect(90, 5, 180, 35), Confidence: 80},
			{Text: "again", Box: NewRect(0, 55, 90, 85), Confidence: 70},
		},
	}

	doc := BuildDocument(levels)

	if len(doc.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(doc.Blocks))
	}
	if got := len(doc.NodesAt(LevelLine)); got != 2 {
		t.Fatalf("lines = %d, want 2", got)
	}
	if got := doc.Assemble(); got != "hello world\nagain\n" {
		t.Errorf("Assemble() = %q, want %q", got, "hello world\nagain\n")
	}
	if doc.Text != doc.Assemble() {
		t.Errorf("Text %q does not match Assemble() %q", doc.Text, doc.Assemble())
	}

	// Mean word confidence.
	if doc.Confidence != 80 {
		t.Errorf("Confidence = %v, want 80", doc.Confidence)
	}
}

func TestBuildDocumentSynthesizesMissingParents(t *testing.T) {
	// Engine reported only word boxes.
	levels := LevelBoxes{
		LevelWord: {
			{Text: "lonely", Box: NewRect(10, 10, 60, 30)},
		},
	}

	doc := BuildDocument(levels)

	for _, level := range []Level{LevelBlock, LevelParagraph, LevelLine, LevelWord} {
		nodes := doc.NodesAt(level)
		if len(nodes) != 1 {
			t.Fatalf("NodesAt(%s) = %d nodes, want 1", level, len(nodes))
		}
		if got := strings.TrimSpace(nodes[0].Text); got != "lonely" {
			t.Errorf("%s text = %q, want %q", level, got, "lonely")
		}
	}
}

func TestBuildDocumentSingleWordAtEveryLevel(t *testing.T) {
	// The single-printed-word scenario: every hierarchy level holds exactly
	// one node whose text is the ground-truth string.
	groundTruth := "INVOICE"
	box := NewRect(40, 40, 160, 80)
	levels := LevelBoxes{
		LevelBlock:     {{Box: NewRect(30, 30, 170, 90)}},
		LevelParagraph: {{Box: NewRect(35, 35, 165, 85)}},
		LevelLine:      {{Box: NewRect(38, 38, 162, 82)}},
		LevelWord:      {{Text: groundTruth, Box: box, Confidence: 96}},
	}

	doc := BuildDocument(levels)

	for _, level := range []Level{LevelBlock, LevelParagraph, LevelLine, LevelWord} {
		nodes := doc.NodesAt(level)
		if len(nodes) != 1 {
			t.Fatalf("NodesAt(%s) = %d nodes, want 1", level, len(nodes))
		}
		if got := strings.TrimSpace(nodes[0].Text); got != groundTruth {
			t.Errorf("%s text = %q, want %q", level, got, groundTruth)
		}
		r := nodes[0].Box
		if r.X0 > r.X1 || r.Y0 > r.Y1 {
			t.Errorf("%s box not canonical: %+v", level, r)
		}
	}
}

func TestBuildDocumentEmpty(t *testing.T) {
	doc := BuildDocument(LevelBoxes{})
	if len(doc.Blocks) != 0 {
		t.Errorf("blocks = %d, want 0", len(doc.Blocks))
	}
	if doc.Text != "" {
		t.Errorf("Text = %q, want empty", doc.Text)
	}
}

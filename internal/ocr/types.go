package ocr

import (
	"context"
	"strings"
)

// Level identifies one granularity of the recognition hierarchy.
type Level int

const (
	LevelBlock Level = iota
	LevelParagraph
	LevelLine
	LevelWord
	LevelSymbol
)

var levelNames = map[Level]string{
	LevelBlock:     "block",
	LevelParagraph: "paragraph",
	LevelLine:      "line",
	LevelWord:      "word",
	LevelSymbol:    "symbol",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLevel maps a level name to its Level value.
func ParseLevel(name string) (Level, bool) {
	for l, n := range levelNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return l, true
		}
	}
	return 0, false
}

// Break describes the whitespace a recognized symbol is followed by.
type Break int

const (
	BreakNone Break = iota
	BreakSpace
	BreakSureSpace
	BreakEOLSureSpace
	BreakLineBreak
	BreakHyphen
)

// Separator returns the text appended after the symbol carrying the break.
// An unset break contributes nothing.
func (b Break) Separator() string {
	switch b {
	case BreakSpace, BreakSureSpace:
		return " "
	case BreakEOLSureSpace, BreakLineBreak:
		return "\n"
	case BreakHyphen:
		return "-"
	default:
		return ""
	}
}

// Symbol is the finest hierarchy node: a single recognized glyph.
type Symbol struct {
	Text       string  `json:"text"`
	Box        Rect    `json:"box"`
	Quad       Quad    `json:"quad"`
	Break      Break   `json:"break"`
	Confidence float64 `json:"confidence"`
}

// Assemble returns the symbol text plus the separator its break implies.
func (s Symbol) Assemble() string {
	return s.Text + s.Break.Separator()
}

// Word is a contiguous run of symbols with no internal whitespace.
//
// Engines that do not emit symbols (the local engine) set Text directly and
// carry the trailing separator in Break; engines that do (the cloud engine)
// leave Text empty and let assembly derive it bottom-up.
type Word struct {
	Text       string   `json:"text"`
	Box        Rect     `json:"box"`
	Quad       Quad     `json:"quad"`
	Break      Break    `json:"break,omitempty"`
	Confidence float64  `json:"confidence"`
	Symbols    []Symbol `json:"symbols,omitempty"`
}

func (w Word) Assemble() string {
	if len(w.Symbols) == 0 {
		return w.Text + w.Break.Separator()
	}
	var sb strings.Builder
	for _, s := range w.Symbols {
		sb.WriteString(s.Assemble())
	}
	return sb.String()
}

// Line is a single baseline of words.
type Line struct {
	Box        Rect    `json:"box"`
	Quad       Quad    `json:"quad"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words"`
}

func (l Line) Assemble() string {
	var sb strings.Builder
	for _, w := range l.Words {
		sb.WriteString(w.Assemble())
	}
	return sb.String()
}

// Paragraph groups one or more lines.
type Paragraph struct {
	Box        Rect    `json:"box"`
	Quad       Quad    `json:"quad"`
	Confidence float64 `json:"confidence"`
	Lines      []Line  `json:"lines"`
}

func (p Paragraph) Assemble() string {
	var sb strings.Builder
	for _, l := range p.Lines {
		sb.WriteString(l.Assemble())
	}
	return sb.String()
}

// Block is a contiguous region of text on the page.
type Block struct {
	Box        Rect        `json:"box"`
	Quad       Quad        `json:"quad"`
	Confidence float64     `json:"confidence"`
	Paragraphs []Paragraph `json:"paragraphs"`
}

func (b Block) Assemble() string {
	var sb strings.Builder
	for _, p := range b.Paragraphs {
		sb.WriteString(p.Assemble())
	}
	return sb.String()
}

// Document is the root of one recognition result. It is rebuilt fresh on
// every Recognize call and never mutated afterwards.
type Document struct {
	Engine     string  `json:"engine"`
	Config     string  `json:"config"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Blocks     []Block `json:"blocks"`
}

// Assemble reconstructs the full document text bottom-up from the hierarchy.
func (d *Document) Assemble() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(b.Assemble())
	}
	return sb.String()
}

// Node is a flat view of one hierarchy node, used by traversal and rendering.
type Node struct {
	Level      Level   `json:"level"`
	Text       string  `json:"text"`
	Box        Rect    `json:"box"`
	Quad       Quad    `json:"quad"`
	Confidence float64 `json:"confidence"`
}

// NodesAt walks the document in reading order and returns every node at the
// requested hierarchy level.
func (d *Document) NodesAt(level Level) []Node {
	var nodes []Node
	for _, b := range d.Blocks {
		if level == LevelBlock {
			nodes = append(nodes, Node{LevelBlock, b.Assemble(), b.Box, b.Quad, b.Confidence})
			continue
		}
		for _, p := range b.Paragraphs {
			if level == LevelParagraph {
				nodes = append(nodes, Node{LevelParagraph, p.Assemble(), p.Box, p.Quad, p.Confidence})
				continue
			}
			for _, l := range p.Lines {
				if level == LevelLine {
					nodes = append(nodes, Node{LevelLine, l.Assemble(), l.Box, l.Quad, l.Confidence})
					continue
				}
				for _, w := range l.Words {
					if level == LevelWord {
						nodes = append(nodes, Node{LevelWord, w.Assemble(), w.Box, w.Quad, w.Confidence})
						continue
					}
					for _, s := range w.Symbols {
						nodes = append(nodes, Node{LevelSymbol, s.Assemble(), s.Box, s.Quad, s.Confidence})
					}
				}
			}
		}
	}
	return nodes
}

// ImageFormat identifies the content type of an input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
)

// Input is a single encoded image submitted for recognition.
type Input struct {
	// Image is the encoded payload in the format declared by Format.
	Image []byte
	// Format declares the image content type.
	Format ImageFormat
	// Languages lists language hints (e.g. "eng") for the engine.
	Languages []string
}

// Engine is the capability contract both OCR backends implement: submit an
// image, receive a hierarchical document. Configuration (page segmentation
// preset, endpoint variant) is fixed at engine construction so independent
// runs share no state.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (*Document, error)
}

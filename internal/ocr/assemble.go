package ocr

// TextBox is one flat result node as emitted by engines that report each
// hierarchy level as an independent list of rectangles (the local engine).
type TextBox struct {
	Text       string
	Box        Rect
	Confidence float64
}

// LevelBoxes carries the flat per-level lists an engine produced for one
// image. Missing levels are tolerated; BuildDocument synthesizes parents.
type LevelBoxes map[Level][]TextBox

// BuildDocument nests flat per-level box lists into the hierarchy by
// geometric containment: a node belongs to the first candidate parent whose
// rectangle contains its center, falling back to a synthesized parent of the
// same extent when none does. Emission order is preserved, which keeps
// reading order intact.
//
// Words get their trailing separator here: a space after every word except
// the last of its line, which closes with a line break.
func BuildDocument(levels LevelBoxes) *Document {
	doc := &Document{}

	blocks := levels[LevelBlock]
	if len(blocks) == 0 {
		blocks = synthesizeRoots(levels)
	}
	for _, bb := range blocks {
		doc.Blocks = append(doc.Blocks, Block{
			Box:        bb.Box,
			Quad:       QuadFromRect(bb.Box),
			Confidence: bb.Confidence,
		})
	}

	attachParagraphs(doc, levels[LevelParagraph])
	attachLines(doc, levels[LevelLine])
	attachWords(doc, levels[LevelWord])
	sealLineBreaks(doc)

	var sum float64
	var n int
	for _, node := range doc.NodesAt(LevelWord) {
		sum += node.Confidence
		n++
	}
	if n > 0 {
		doc.Confidence = sum / float64(n)
	}
	doc.Text = doc.Assemble()
	return doc
}

// synthesizeRoots covers engines that skipped the block level entirely: one
// block spanning everything that was reported.
func synthesizeRoots(levels LevelBoxes) []TextBox {
	var union Rect
	found := false
	for _, boxes := range levels {
		for _, b := range boxes {
			union = union.Union(b.Box)
			found = true
		}
	}
	if !found {
		return nil
	}
	return []TextBox{{Box: union}}
}

func attachParagraphs(doc *Document, paras []TextBox) {
	if len(paras) == 0 {
		// One paragraph per block so lower levels always have a parent.
		for i := range doc.Blocks {
			b := &doc.Blocks[i]
			b.Paragraphs = append(b.Paragraphs, Paragraph{Box: b.Box, Quad: b.Quad})
		}
		return
	}
	for _, pb := range paras {
		b := parentBlock(doc, pb.Box)
		b.Paragraphs = append(b.Paragraphs, Paragraph{
			Box:        pb.Box,
			Quad:       QuadFromRect(pb.Box),
			Confidence: pb.Confidence,
		})
	}
}

func attachLines(doc *Document, lines []TextBox) {
	if len(lines) == 0 {
		for i := range doc.Blocks {
			for j := range doc.Blocks[i].Paragraphs {
				p := &doc.Blocks[i].Paragraphs[j]
				p.Lines = append(p.Lines, Line{Box: p.Box, Quad: p.Quad})
			}
		}
		return
	}
	for _, lb := range lines {
		p := parentParagraph(doc, lb.Box)
		p.Lines = append(p.Lines, Line{
			Box:        lb.Box,
			Quad:       QuadFromRect(lb.Box),
			Confidence: lb.Confidence,
		})
	}
}

func attachWords(doc *Document, words []TextBox) {
	for _, wb := range words {
		l := parentLine(doc, wb.Box)
		l.Words = append(l.Words, Word{
			Text:       wb.Text,
			Box:        wb.Box,
			Quad:       QuadFromRect(wb.Box),
			Break:      BreakSpace,
			Confidence: wb.Confidence,
		})
	}
}

// sealLineBreaks turns the trailing separator of each line's last word into a
// line break.
func sealLineBreaks(doc *Document) {
	for i := range doc.Blocks {
		for j := range doc.Blocks[i].Paragraphs {
			for k := range doc.Blocks[i].Paragraphs[j].Lines {
				words := doc.Blocks[i].Paragraphs[j].Lines[k].Words
				if len(words) > 0 {
					words[len(words)-1].Break = BreakLineBreak
				}
			}
		}
	}
}

func parentBlock(doc *Document, box Rect) *Block {
	cx, cy := box.Center()
	for i := range doc.Blocks {
		if doc.Blocks[i].Box.ContainsPoint(cx, cy) {
			return &doc.Blocks[i]
		}
	}
	doc.Blocks = append(doc.Blocks, Block{Box: box, Quad: QuadFromRect(box)})
	return &doc.Blocks[len(doc.Blocks)-1]
}

func parentParagraph(doc *Document, box Rect) *Paragraph {
	cx, cy := box.Center()
	for i := range doc.Blocks {
		for j := range doc.Blocks[i].Paragraphs {
			if doc.Blocks[i].Paragraphs[j].Box.ContainsPoint(cx, cy) {
				return &doc.Blocks[i].Paragraphs[j]
			}
		}
	}
	b := parentBlock(doc, box)
	b.Paragraphs = append(b.Paragraphs, Paragraph{Box: box, Quad: QuadFromRect(box)})
	return &b.Paragraphs[len(b.Paragraphs)-1]
}

func parentLine(doc *Document, box Rect) *Line {
	cx, cy := box.Center()
	for i := range doc.Blocks {
		for j := range doc.Blocks[i].Paragraphs {
			for k := range doc.Blocks[i].Paragraphs[j].Lines {
				if doc.Blocks[i].Paragraphs[j].Lines[k].Box.ContainsPoint(cx, cy) {
					return &doc.Blocks[i].Paragraphs[j].Lines[k]
				}
			}
		}
	}
	p := parentParagraph(doc, box)
	p.Lines = append(p.Lines, Line{Box: box, Quad: QuadFromRect(box)})
	return &p.Lines[len(p.Lines)-1]
}

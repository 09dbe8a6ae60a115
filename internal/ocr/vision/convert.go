package vision

import (
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"go-ocr-compare/internal/ocr"
)

// Convert maps a Vision full-text annotation onto the neutral hierarchy.
// Only the first page is used. Vision groups words directly under
// paragraphs; lines are reconstructed by closing the current line after any
// word whose final symbol carries a line-ending break.
func Convert(annotation *visionpb.TextAnnotation) *ocr.Document {
	doc := &ocr.Document{}
	if annotation == nil || len(annotation.GetPages()) == 0 {
		return doc
	}
	doc.Text = annotation.GetText()

	var confSum float64
	var confN int

	page := annotation.GetPages()[0]
	for _, pbBlock := range page.GetBlocks() {
		block := ocr.Block{
			Quad:       quadFromPoly(pbBlock.GetBoundingBox()),
			Confidence: float64(pbBlock.GetConfidence()),
		}
		block.Box = block.Quad.Bounds()

		for _, pbPara := range pbBlock.GetParagraphs() {
			para := ocr.Paragraph{
				Quad:       quadFromPoly(pbPara.GetBoundingBox()),
				Confidence: float64(pbPara.GetConfidence()),
			}
			para.Box = para.Quad.Bounds()

			var line ocr.Line
			flush := func() {
				if len(line.Words) == 0 {
					return
				}
				for _, w := range line.Words {
					line.Box = line.Box.Union(w.Box)
				}
				line.Quad = ocr.QuadFromRect(line.Box)
				para.Lines = append(para.Lines, line)
				line = ocr.Line{}
			}

			for _, pbWord := range pbPara.GetWords() {
				word := ocr.Word{
					Quad:       quadFromPoly(pbWord.GetBoundingBox()),
					Confidence: float64(pbWord.GetConfidence()),
				}
				word.Box = word.Quad.Bounds()
				confSum += word.Confidence
				confN++

				for _, pbSym := range pbWord.GetSymbols() {
					sym := ocr.Symbol{
						Text:       pbSym.GetText(),
						Quad:       quadFromPoly(pbSym.GetBoundingBox()),
						Break:      convertBreak(pbSym.GetProperty().GetDetectedBreak().GetType()),
						Confidence: float64(pbSym.GetConfidence()),
					}
					sym.Box = sym.Quad.Bounds()
					word.Symbols = append(word.Symbols, sym)
				}

				line.Words = append(line.Words, word)
				if endsLine(word) {
					flush()
				}
			}
			flush()

			block.Paragraphs = append(block.Paragraphs, para)
		}
		doc.Blocks = append(doc.Blocks, block)
	}

	if confN > 0 {
		doc.Confidence = confSum / float64(confN)
	}
	return doc
}

// endsLine reports whether the word's final symbol closes its text line.
func endsLine(w ocr.Word) bool {
	if len(w.Symbols) == 0 {
		return false
	}
	switch w.Symbols[len(w.Symbols)-1].Break {
	case ocr.BreakLineBreak, ocr.BreakEOLSureSpace:
		return true
	default:
		return false
	}
}

func convertBreak(t visionpb.TextAnnotation_DetectedBreak_BreakType) ocr.Break {
	switch t {
	case visionpb.TextAnnotation_DetectedBreak_SPACE:
		return ocr.BreakSpace
	case visionpb.TextAnnotation_DetectedBreak_SURE_SPACE:
		return ocr.BreakSureSpace
	case visionpb.TextAnnotation_DetectedBreak_EOL_SURE_SPACE:
		return ocr.BreakEOLSureSpace
	case visionpb.TextAnnotation_DetectedBreak_LINE_BREAK:
		return ocr.BreakLineBreak
	case visionpb.TextAnnotation_DetectedBreak_HYPHEN:
		return ocr.BreakHyphen
	default:
		return ocr.BreakNone
	}
}

// quadFromPoly copies the polygon's four vertices. Vision always emits four;
// anything short is padded by repeating the last vertex so the quad invariant
// holds regardless.
func quadFromPoly(poly *visionpb.BoundingPoly) ocr.Quad {
	var q ocr.Quad
	verts := poly.GetVertices()
	if len(verts) == 0 {
		return q
	}
	for i := 0; i < 4; i++ {
		v := verts[len(verts)-1]
		if i < len(verts) {
			v = verts[i]
		}
		q[i] = ocr.Point{X: int(v.GetX()), Y: int(v.GetY())}
	}
	return q
}

package roster

import (
	"math"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/enums"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// locateTables opens the document and returns every candidate attendance
// table, in page order. Pages without tabular structure contribute nothing;
// a document that cannot be opened fails with ErrUnreadablePDF.
func (e *Extractor) locateTables(pdfBytes []byte) ([]RawTable, error) {
	doc, err := e.instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrUnreadablePDF, "open document: %v", err)
	}
	defer e.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := e.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	var tables []RawTable
	for i := 0; i < pageCount.PageCount; i++ {
		pageTables, err := e.locatePageTables(doc.Document, i)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan page %d", i+1)
		}
		tables = append(tables, pageTables...)
	}
	return tables, nil
}

// locatePageTables extracts the words and ruling lines of one page and runs
// table detection over them.
func (e *Extractor) locatePageTables(docRef references.FPDF_DOCUMENT, pageIndex int) ([]RawTable, error) {
	pageResp, err := e.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: docRef,
		Index:    pageIndex,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}
	defer e.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: pageResp.Page,
	})

	pageWidth, err := e.instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{ByReference: &pageResp.Page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page width")
	}
	pageHeight, err := e.instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{ByReference: &pageResp.Page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page height")
	}

	words, err := extractPageWords(e.instance, pageResp.Page, float64(pageHeight.PageHeight))
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract page text")
	}
	if len(words) == 0 {
		return nil, nil
	}

	rulings, err := extractRulingEdges(e.instance, pageResp.Page,
		float64(pageWidth.PageWidth), float64(pageHeight.PageHeight))
	if err != nil {
		// Non-fatal: fall back to text-alignment detection.
		rulings = nil
	}

	return DetectTables(words, rulings, pageIndex+1, e.config.TableSettings), nil
}

// extractPageWords reads every character of the page and groups them into
// positioned words. Character boxes are converted from PDF coordinates
// (origin bottom-left) to top-left origin.
func extractPageWords(instance pdfium.Pdfium, page references.FPDF_PAGE, pageHeight float64) ([]Word, error) {
	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}
	if charCount.Count == 0 {
		return nil, nil
	}

	type posChar struct {
		text rune
		box  Rect
	}
	chars := make([]posChar, 0, charCount.Count)

	for i := 0; i < charCount.Count; i++ {
		unicodeRes, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}
		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}
		chars = append(chars, posChar{
			text: rune(unicodeRes.Unicode),
			box: Rect{
				X0: charBox.Left,
				Y0: pageHeight - charBox.Top,
				X1: charBox.Right,
				Y1: pageHeight - charBox.Bottom,
			},
		})
	}

	// Group into words: break on whitespace, on a new baseline, or on a
	// horizontal gap wide enough to indicate a cell boundary.
	var words []Word
	var current []posChar
	flush := func() {
		if len(current) == 0 {
			return
		}
		w := Word{Box: current[0].box}
		for _, c := range current {
			w.Text += string(c.text)
			w.Box.X0 = math.Min(w.Box.X0, c.box.X0)
			w.Box.Y0 = math.Min(w.Box.Y0, c.box.Y0)
			w.Box.X1 = math.Max(w.Box.X1, c.box.X1)
			w.Box.Y1 = math.Max(w.Box.Y1, c.box.Y1)
		}
		words = append(words, w)
		current = nil
	}

	for _, c := range chars {
		if c.text == ' ' || c.text == '\t' || c.text == '\n' || c.text == '\r' {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			gap := c.box.X0 - prev.box.X1
			charWidth := math.Max(prev.box.Width(), 1.0)
			newBaseline := math.Abs(c.box.Y1-prev.box.Y1) > prev.box.Height()*0.5
			if newBaseline || gap > charWidth*2.5 {
				flush()
			}
		}
		current = append(current, c)
	}
	flush()

	return words, nil
}

// extractRulingEdges extracts explicit line and rectangle path objects from
// the page, filtering out page borders so a framed page is not mistaken for
// one giant table.
func extractRulingEdges(instance pdfium.Pdfium, page references.FPDF_PAGE, pageWidth, pageHeight float64) ([]Edge, error) {
	countResp, err := instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{
		Page: requests.Page{ByReference: &page},
	})
	if err != nil {
		return nil, err
	}

	var edges []Edge
	for i := 0; i < countResp.Count; i++ {
		objResp, err := instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{
			Page:  requests.Page{ByReference: &page},
			Index: i,
		})
		if err != nil {
			continue
		}
		typeResp, err := instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{
			PageObject: objResp.PageObject,
		})
		if err != nil || typeResp.Type != enums.FPDF_PAGEOBJ_PATH {
			continue
		}
		boundsResp, err := instance.FPDFPageObj_GetBounds(&requests.FPDFPageObj_GetBounds{
			PageObject: objResp.PageObject,
		})
		if err != nil {
			continue
		}

		x0 := float64(boundsResp.Left)
		y0 := pageHeight - float64(boundsResp.Top)
		x1 := float64(boundsResp.Right)
		y1 := pageHeight - float64(boundsResp.Bottom)

		segResp, err := instance.FPDFPath_CountSegments(&requests.FPDFPath_CountSegments{
			PageObject: objResp.PageObject,
		})
		if err != nil || segResp.Count < 2 {
			continue
		}

		if segResp.Count == 2 {
			if edge := pathToEdge(x0, y0, x1, y1); edge != nil && !isPageBorder(*edge, pageWidth, pageHeight) {
				edges = append(edges, *edge)
			}
			continue
		}
		// Rectangles and cell grids: take the four edges of the bounds.
		for _, edge := range boundsToEdges(x0, y0, x1, y1) {
			if !isPageBorder(edge, pageWidth, pageHeight) {
				edges = append(edges, edge)
			}
		}
	}
	return edges, nil
}

// isPageBorder reports whether an edge sits at the page boundary or spans
// nearly the full page dimension.
func isPageBorder(edge Edge, pageWidth, pageHeight float64) bool {
	const borderTolerance = 20.0
	const fullSpanThreshold = 0.95

	if edge.Orientation == "h" {
		if edge.Top < borderTolerance || edge.Top > pageHeight-borderTolerance {
			return true
		}
		if edge.Width > pageWidth*fullSpanThreshold {
			return true
		}
	} else {
		if edge.X0 < borderTolerance || edge.X0 > pageWidth-borderTolerance {
			return true
		}
		if edge.Height > pageHeight*fullSpanThreshold {
			return true
		}
	}
	return false
}

// pathToEdge converts a two-segment path into an edge when it is close to
// horizontal or vertical.
func pathToEdge(x0, y0, x1, y1 float64) *Edge {
	width := x1 - x0
	height := y1 - y0

	if height < 2.0 && width > 1.0 {
		return &Edge{X0: x0, X1: x1, Top: y0, Bottom: y1, Width: width, Height: height, Orientation: "h"}
	}
	if width < 2.0 && height > 1.0 {
		return &Edge{X0: x0, X1: x1, Top: y0, Bottom: y1, Width: width, Height: height, Orientation: "v"}
	}
	return nil
}

// boundsToEdges converts a rectangle's bounds into its four edges.
func boundsToEdges(x0, y0, x1, y1 float64) []Edge {
	return []Edge{
		{X0: x0, X1: x1, Top: y0, Bottom: y0, Width: x1 - x0, Orientation: "h"},
		{X0: x0, X1: x1, Top: y1, Bottom: y1, Width: x1 - x0, Orientation: "h"},
		{X0: x0, X1: x0, Top: y0, Bottom: y1, Height: y1 - y0, Orientation: "v"},
		{X0: x1, X1: x1, Top: y0, Bottom: y1, Height: y1 - y0, Orientation: "v"},
	}
}

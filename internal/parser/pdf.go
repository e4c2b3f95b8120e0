package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Fallback page box when a page carries no usable MediaBox (US Letter).
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// PDFParser handles PDF resumes. Block geometry comes from the Go library,
// with pdftotext as an optional fallback.
type PDFParser struct {
	MaxPages          int
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(ctx context.Context, r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, openErr(filename, fmt.Errorf("read pdf: %w", err))
	}
	if len(data) == 0 {
		return nil, openErr(filename, errors.New("empty file"))
	}

	// Preflight with pdfcpu: catches truncated files early and bounds page count.
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pageCount, preflightErr := api.PageCount(bytes.NewReader(data), conf)
	if preflightErr == nil && p.MaxPages > 0 && pageCount > p.MaxPages {
		return nil, openErr(filename, fmt.Errorf("document has %d pages, limit is %d", pageCount, p.MaxPages))
	}

	doc, err := readPDFLayout(data, filename)
	if err != nil && p.FallbackPdftotext {
		doc, err = readPdftotextLayout(ctx, data, filename)
	}
	if err != nil {
		if preflightErr != nil {
			err = errors.Join(fmt.Errorf("preflight: %w", preflightErr), err)
		}
		return nil, openErr(filename, err)
	}
	return doc, nil
}

// readPDFLayout extracts positioned text blocks from every page.
func readPDFLayout(data []byte, filename string) (doc *document.Document, err error) {
	// The content stream interpreter panics on some malformed operators.
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("pdf content: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	doc = &document.Document{Name: filename}
	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, errors.New("pdf has no pages")
	}
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		out := &document.Page{Number: i, Width: defaultPageWidth, Height: defaultPageHeight}
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, out)
			continue
		}
		box := mediaBox(page)
		out.Width = box.x1 - box.x0
		out.Height = box.y1 - box.y0
		out.Blocks = blocksFromGlyphs(page.Content().Text, box)
		doc.Pages = append(doc.Pages, out)
	}
	return doc, nil
}

type pageBox struct {
	x0, y0, x1, y1 float64
}

// mediaBox resolves the page's MediaBox, following the Parent chain since
// the attribute is inheritable.
func mediaBox(page pdflib.Page) pageBox {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		mb := v.Key("MediaBox")
		if mb.IsNull() || mb.Len() != 4 {
			continue
		}
		box := pageBox{
			x0: mb.Index(0).Float64(),
			y0: mb.Index(1).Float64(),
			x1: mb.Index(2).Float64(),
			y1: mb.Index(3).Float64(),
		}
		if box.x1 < box.x0 {
			box.x0, box.x1 = box.x1, box.x0
		}
		if box.y1 < box.y0 {
			box.y0, box.y1 = box.y1, box.y0
		}
		if box.x1-box.x0 > 0 && box.y1-box.y0 > 0 {
			return box
		}
	}
	return pageBox{x1: defaultPageWidth, y1: defaultPageHeight}
}

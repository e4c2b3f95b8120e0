package parser

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/testutil"
)

// twoColumnResume is a two-page resume: a banner across the midline, two
// columns under it, and a short second page.
func twoColumnResume(opts testutil.PDFOptions) []byte {
	return testutil.BuildPDF([][]testutil.PDFText{
		{
			{X: 150, Y: 770, Size: 14, S: "Jane Doe Senior Engineer Banner"},
			{X: 40, Y: 700, S: "Experience"},
			{X: 40, Y: 688, S: "Acme Corp"},
			{X: 340, Y: 700, S: "Skills"},
			{X: 340, Y: 688, S: "Go SQL"},
		},
		{
			{X: 40, Y: 700, S: "References"},
		},
	}, opts)
}

func parsePDF(t *testing.T, p *PDFParser, data []byte) *document.Document {
	t.Helper()
	doc, err := p.Parse(context.Background(), bytes.NewReader(data), "cv.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func findBlock(page *document.Page, prefix string) (document.TextBlock, bool) {
	for _, b := range page.Blocks {
		if strings.HasPrefix(b.Text, prefix) {
			return b, true
		}
	}
	return document.TextBlock{}, false
}

func TestPDFParser_ParsesPagesAndInheritedMediaBox(t *testing.T) {
	doc := parsePDF(t, &PDFParser{}, twoColumnResume(testutil.PDFOptions{}))

	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}
	for _, page := range doc.Pages {
		if page.Width != 600 || page.Height != 800 {
			t.Errorf("page %d: expected 600x800, got %vx%v", page.Number, page.Width, page.Height)
		}
	}
	if doc.Pages[0].Number != 1 || doc.Pages[1].Number != 2 {
		t.Errorf("unexpected page numbers %d, %d", doc.Pages[0].Number, doc.Pages[1].Number)
	}

	first := doc.Pages[0]
	if len(first.Blocks) != 3 {
		t.Fatalf("expected 3 blocks on page 1, got %d: %+v", len(first.Blocks), first.Blocks)
	}
	left, ok := findBlock(first, "Experience")
	if !ok || left.Text != "Experience\nAcme Corp" {
		t.Errorf("left column block: got %+v", left)
	}
	right, ok := findBlock(first, "Skills")
	if !ok || right.Text != "Skills\nGo SQL" {
		t.Errorf("right column block: got %+v", right)
	}
	if left.Right >= 300 || right.Left <= 300 {
		t.Errorf("expected columns on either side of x=300, got left=%+v right=%+v", left, right)
	}
}

func TestPDFParser_BannerWidth(t *testing.T) {
	tests := []struct {
		name string
		opts testutil.PDFOptions
	}{
		{"font widths", testutil.PDFOptions{}},
		{"no font widths", testutil.PDFOptions{NoWidths: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parsePDF(t, &PDFParser{}, twoColumnResume(tt.opts))
			banner, ok := findBlock(doc.Pages[0], "Jane Doe")
			if !ok {
				t.Fatalf("banner block missing: %+v", doc.Pages[0].Blocks)
			}
			if banner.Text != "Jane Doe Senior Engineer Banner" {
				t.Errorf("unexpected banner text %q", banner.Text)
			}
			// 31 glyphs at half of a 14pt em each.
			if banner.Left != 150 || banner.Right < 366 || banner.Right > 368 {
				t.Errorf("expected banner to span 150..367, got %v..%v", banner.Left, banner.Right)
			}
		})
	}
}

func TestPDFParser_MaxPages(t *testing.T) {
	data := twoColumnResume(testutil.PDFOptions{})

	_, err := (&PDFParser{MaxPages: 1}).Parse(context.Background(), bytes.NewReader(data), "cv.pdf")
	var oe *OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OpenError, got %v", err)
	}
	if !strings.Contains(err.Error(), "limit is 1") {
		t.Errorf("expected page limit in error, got %v", err)
	}

	if doc := parsePDF(t, &PDFParser{MaxPages: 2}, data); len(doc.Pages) != 2 {
		t.Errorf("expected 2 pages under a limit of 2, got %d", len(doc.Pages))
	}
}

// Package testutil builds fixtures shared by tests in several packages.
package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// PDFText is one string shown at (X, Y) in PDF user space (origin bottom-left).
type PDFText struct {
	X, Y float64
	Size float64
	S    string
}

// PDFOptions shapes the generated document.
type PDFOptions struct {
	Width, Height float64 // MediaBox; 600x800 when zero
	// NoWidths omits the font's /Widths array, as many standard-14 fonts do.
	NoWidths bool
}

// CharWidth is the advance of every glyph in the generated font, in
// thousandths of the font size.
const CharWidth = 500

// BuildPDF writes a minimal PDF with one page per entry in pages. The
// MediaBox and font resources live only on the /Pages node so pages
// inherit them.
func BuildPDF(pages [][]PDFText, opts PDFOptions) []byte {
	if opts.Width == 0 {
		opts.Width = 600
	}
	if opts.Height == 0 {
		opts.Height = 800
	}

	font := "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding"
	if !opts.NoWidths {
		widths := strings.TrimSpace(strings.Repeat(fmt.Sprintf("%d ", CharWidth), 126-32+1))
		font += " /FirstChar 32 /LastChar 126 /Widths [" + widths + "]"
	}
	font += " >>"

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 %g %g] /Resources << /Font << /F1 3 0 R >> >> >>",
			strings.Join(kids, " "), len(pages), opts.Width, opts.Height),
		font,
	}
	for i, texts := range pages {
		var content strings.Builder
		for _, t := range texts {
			size := t.Size
			if size == 0 {
				size = 10
			}
			fmt.Fprintf(&content, "BT /F1 %g Tf %g %g Td (%s) Tj ET\n", size, t.X, t.Y, escapePDFString(t.S))
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

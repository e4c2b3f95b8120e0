package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx resumes. Paragraphs and table cells become blocks
// in document order.
type DOCXParser struct{}

func (p *DOCXParser) Parse(_ context.Context, r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, openErr(filename, fmt.Errorf("read docx: %w", err))
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, openErr(filename, fmt.Errorf("parse docx: %w", err))
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			if text := docxParagraphText(v); text != "" {
				paragraphs = append(paragraphs, text)
			}
		case *docx.Table:
			// Two-column resume templates are usually a table; read it row by row.
			for _, row := range v.TableRows {
				var cells []string
				for _, cell := range row.TableCells {
					var parts []string
					for _, para := range cell.Paragraphs {
						if text := docxParagraphText(para); text != "" {
							parts = append(parts, text)
						}
					}
					if len(parts) > 0 {
						cells = append(cells, strings.Join(parts, "\n"))
					}
				}
				paragraphs = append(paragraphs, cells...)
			}
		}
	}

	return document.Reflowed(filename, paragraphs), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			switch t := rc.(type) {
			case *docx.Text:
				buf.WriteString(t.Text)
			case *docx.Tab:
				buf.WriteByte(' ')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

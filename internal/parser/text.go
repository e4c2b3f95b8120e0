package parser

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
)

// TextParser handles plain text resumes. Blank lines separate blocks.
type TextParser struct{}

func (p *TextParser) Parse(_ context.Context, r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, openErr(filename, err)
	}

	return document.Reflowed(filename, paragraphs), nil
}

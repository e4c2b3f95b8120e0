package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
	"golang.org/x/net/html"
)

// readPdftotextLayout shells out to poppler's pdftotext and reads block
// boxes from its -bbox-layout XHTML.
func readPdftotextLayout(ctx context.Context, data []byte, filename string) (*document.Document, error) {
	// pdftotext needs a path.
	tmp, err := os.CreateTemp("", "resume-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.CommandContext(ctx, "pdftotext", "-bbox-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return parseBBoxLayout(bytes.NewReader(out), filename)
}

// parseBBoxLayout reads <page>/<block>/<line>/<word> elements. Coordinates
// are already top-down.
func parseBBoxLayout(r io.Reader, filename string) (*document.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bbox layout: %w", err)
	}

	doc := &document.Document{Name: filename}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "page":
				page := &document.Page{
					Number: len(doc.Pages) + 1,
					Width:  attrFloat(n, "width"),
					Height: attrFloat(n, "height"),
				}
				doc.Pages = append(doc.Pages, page)
			case "block":
				if len(doc.Pages) == 0 {
					return
				}
				page := doc.Pages[len(doc.Pages)-1]
				page.Blocks = append(page.Blocks, document.TextBlock{
					Left:   attrFloat(n, "xmin"),
					Top:    attrFloat(n, "ymin"),
					Right:  attrFloat(n, "xmax"),
					Bottom: attrFloat(n, "ymax"),
					Text:   bboxBlockText(n),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("pdftotext produced no pages")
	}
	return doc, nil
}

// bboxBlockText joins words with spaces and lines with newlines.
func bboxBlockText(block *html.Node) string {
	var lines []string
	for line := block.FirstChild; line != nil; line = line.NextSibling {
		if line.Type != html.ElementNode || line.Data != "line" {
			continue
		}
		var words []string
		for w := line.FirstChild; w != nil; w = w.NextSibling {
			if w.Type == html.ElementNode && w.Data == "word" {
				if t := textContent(w); t != "" {
					words = append(words, t)
				}
			}
		}
		if len(words) > 0 {
			lines = append(lines, strings.Join(words, " "))
		}
	}
	return strings.Join(lines, "\n")
}

// attrFloat reads a numeric attribute. The HTML tokenizer lower-cases names.
func attrFloat(n *html.Node, key string) float64 {
	for _, a := range n.Attr {
		if a.Key == key {
			f, err := strconv.ParseFloat(a.Val, 64)
			if err != nil {
				return 0
			}
			return f
		}
	}
	return 0
}

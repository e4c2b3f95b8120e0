package layout

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/parser"
)

// Extractor opens resume documents and linearizes them into text.
type Extractor struct {
	opts parser.Options
	log  *slog.Logger
}

func NewExtractor(opts parser.Options, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Extractor{opts: opts, log: log}
}

// ExtractFile opens path and returns its linearized text.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	// Reject unknown formats before touching the file.
	if _, err := parser.ForFile(path, e.opts); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", &parser.OpenError{Filename: filepath.Base(path), Err: err}
	}
	defer f.Close()
	return e.Extract(ctx, f, filepath.Base(path))
}

// Extract reads a document from r. filename selects the format.
func (e *Extractor) Extract(ctx context.Context, r io.Reader, filename string) (string, error) {
	doc, err := e.Load(ctx, r, filename)
	if err != nil {
		return "", err
	}
	return Linearize(doc), nil
}

// Load parses r into a Document without linearizing it.
func (e *Extractor) Load(ctx context.Context, r io.Reader, filename string) (*document.Document, error) {
	p, err := parser.ForFile(filename, e.opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := p.Parse(ctx, r, filename)
	if err != nil {
		e.log.Warn("document open failed", "filename", filename, "error", err)
		return nil, err
	}

	multi := 0
	for _, page := range doc.Pages {
		if IsMultiColumn(page.Blocks, page.Width/2) {
			multi++
		}
	}
	e.log.Debug("document loaded",
		"filename", filename,
		"pages", len(doc.Pages),
		"blocks", doc.NumBlocks(),
		"multi_column_pages", multi,
	)
	return doc, nil
}

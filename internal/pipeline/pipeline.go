package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/layout"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
)

// Result is everything produced for one resume.
type Result struct {
	DocID  string         `json:"doc_id"`
	Text   string         `json:"-"`
	Record extract.Record `json:"record"`
}

// Hooks observe pipeline phases. Nil fields are skipped.
type Hooks struct {
	OnPhase func(status JobStatus)
}

func (h Hooks) phase(s JobStatus) {
	if h.OnPhase != nil {
		h.OnPhase(s)
	}
}

// Pipeline wires layout extraction, record recovery and artifact storage.
type Pipeline struct {
	extractor *layout.Extractor
	recoverer *extract.Recoverer
	store     store.ArtifactStore
	log       *slog.Logger

	// KeepOriginal also stores the uploaded file next to the artifacts.
	KeepOriginal bool
}

func New(extractor *layout.Extractor, recoverer *extract.Recoverer, st store.ArtifactStore, log *slog.Logger) *Pipeline {
	if st == nil {
		st = store.NoopStore{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		extractor: extractor,
		recoverer: recoverer,
		store:     st,
		log:       log,
	}
}

// Recoverer exposes the recoverer, mainly for its stats.
func (p *Pipeline) Recoverer() *extract.Recoverer {
	return p.recoverer
}

// Store returns the artifact store.
func (p *Pipeline) Store() store.ArtifactStore {
	return p.store
}

// DocID derives a stable document ID from the uploaded bytes.
func DocID(data []byte) string {
	return ContentHashHex(data)[:16]
}

// Text runs layout extraction only.
func (p *Pipeline) Text(ctx context.Context, filename string, data []byte) (string, error) {
	return p.extractor.Extract(ctx, bytes.NewReader(data), filename)
}

// Run extracts text, recovers the record and stores both artifacts under
// the document ID. A record that failed to parse is still a result.
func (p *Pipeline) Run(ctx context.Context, filename string, data []byte, hooks Hooks) (Result, error) {
	res := Result{DocID: DocID(data)}
	log := p.log.With("doc_id", res.DocID, "filename", filename)

	hooks.phase(StatusExtracting)
	text, err := p.Text(ctx, filename, data)
	if err != nil {
		return res, err
	}
	res.Text = text
	log.Info("text extracted", "chars", len(text))

	hooks.phase(StatusRecovering)
	rec, err := p.recoverer.Recover(ctx, text)
	if err != nil {
		log.Error("record recovery failed", "error", err)
		return res, err
	}
	res.Record = rec
	log.Info("record recovered", "parse_failed", rec.IsError())

	hooks.phase(StatusStoring)
	if err := p.save(ctx, res, filename, data); err != nil {
		log.Error("store failed", "error", err)
		return res, err
	}
	return res, nil
}

func (p *Pipeline) save(ctx context.Context, res Result, filename string, data []byte) error {
	recJSON, err := extract.EncodeIndent(res.Record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := p.store.Put(ctx, res.DocID, store.TextArtifact, []byte(res.Text)); err != nil {
		return fmt.Errorf("store text: %w", err)
	}
	if err := p.store.Put(ctx, res.DocID, store.RecordArtifact, recJSON); err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	if p.KeepOriginal {
		if err := p.store.Put(ctx, res.DocID, OriginalArtifact(filename), data); err != nil {
			return fmt.Errorf("store original: %w", err)
		}
	}
	return nil
}

// OriginalArtifact names the stored copy of an upload.
func OriginalArtifact(filename string) string {
	return "original" + strings.ToLower(filepath.Ext(filename))
}

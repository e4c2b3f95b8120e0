// Package store persists per-resume artifacts: the extracted text, the
// recovered record and the uploaded original.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/config"
)

// Artifact names, shared by every backend.
const (
	TextArtifact   = "extracted_text.txt"
	RecordArtifact = "extracted_resume_info.json"
)

var (
	// ErrNotFound is returned by Get when the artifact does not exist.
	ErrNotFound = errors.New("artifact not found")
	// ErrInvalidName rejects IDs and names that are not a single path element.
	ErrInvalidName = errors.New("invalid artifact path")
)

// ArtifactStore holds named artifacts grouped by document ID.
type ArtifactStore interface {
	Put(ctx context.Context, docID, name string, data []byte) error
	Get(ctx context.Context, docID, name string) ([]byte, error)
	Delete(ctx context.Context, docID string) error
}

// New builds the store selected by STORE_BACKEND. The returned func
// releases backend resources.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (ArtifactStore, func(), error) {
	switch cfg.StoreBackend {
	case "local", "":
		return NewLocalStore(cfg.OutputDir), func() {}, nil
	case "gcs":
		s, err := NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSPrefix, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "none":
		return NoopStore{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// checkName rejects IDs and names that would escape their directory.
func checkName(kind, s string) error {
	if s == "" || !filepath.IsLocal(s) || filepath.Base(s) != s {
		return fmt.Errorf("%w: %s %q", ErrInvalidName, kind, s)
	}
	return nil
}

// NoopStore discards everything.
type NoopStore struct{}

func (NoopStore) Put(context.Context, string, string, []byte) error { return nil }

func (NoopStore) Get(context.Context, string, string) ([]byte, error) { return nil, ErrNotFound }

func (NoopStore) Delete(context.Context, string) error { return nil }

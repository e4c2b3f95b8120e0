package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore writes artifacts to <root>/<docID>/<name>. An empty docID
// writes directly into root, which is how the CLI lays out its output.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) dir(docID string) (string, error) {
	if docID == "" {
		return s.root, nil
	}
	if err := checkName("doc id", docID); err != nil {
		return "", err
	}
	return filepath.Join(s.root, docID), nil
}

// Put replaces the artifact atomically: readers see the old or the new
// content, never a partial write.
func (s *LocalStore) Put(ctx context.Context, docID, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName("artifact name", name); err != nil {
		return err
	}
	dir, err := s.dir(docID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) Get(ctx context.Context, docID, name string) ([]byte, error) {
	if err := checkName("artifact name", name); err != nil {
		return nil, err
	}
	dir, err := s.dir(docID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Delete removes every artifact of a document. Deleting an unknown
// document is not an error.
func (s *LocalStore) Delete(ctx context.Context, docID string) error {
	if err := checkName("doc id", docID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.root, docID))
}

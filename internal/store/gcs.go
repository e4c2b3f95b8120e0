package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
)

// GCSStore keeps artifacts in a bucket under <prefix>/<docID>/<name>.
type GCSStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	log    *slog.Logger
}

func NewGCSStore(ctx context.Context, bucket, prefix string, log *slog.Logger) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &GCSStore{
		client: client,
		bucket: client.Bucket(bucket),
		prefix: prefix,
		log:    log,
	}, nil
}

func (s *GCSStore) objectName(docID, name string) string {
	return path.Join(s.prefix, docID, name)
}

// Put first tries a create-only write. When the object already exists the
// write is repeated unconditionally, so re-processing a resume replaces
// its artifacts.
func (s *GCSStore) Put(ctx context.Context, docID, name string, data []byte) error {
	if err := checkName("doc id", docID); err != nil {
		return err
	}
	if err := checkName("artifact name", name); err != nil {
		return err
	}
	obj := s.bucket.Object(s.objectName(docID, name))

	err := writeObject(ctx, obj.If(storage.Conditions{DoesNotExist: true}), data)
	if isPreconditionFailed(err) {
		s.log.Debug("artifact exists, overwriting", "object", obj.ObjectName())
		err = writeObject(ctx, obj, data)
	}
	if err != nil {
		return fmt.Errorf("write gs://%s/%s: %w", obj.BucketName(), obj.ObjectName(), err)
	}
	return nil
}

func writeObject(ctx context.Context, obj *storage.ObjectHandle, data []byte) error {
	w := obj.NewWriter(ctx)
	w.ContentType = contentType(obj.ObjectName())
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func isPreconditionFailed(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func (s *GCSStore) Get(ctx context.Context, docID, name string) ([]byte, error) {
	if err := checkName("doc id", docID); err != nil {
		return nil, err
	}
	r, err := s.bucket.Object(s.objectName(docID, name)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Delete removes every object under the document's prefix.
func (s *GCSStore) Delete(ctx context.Context, docID string) error {
	if err := checkName("doc id", docID); err != nil {
		return err
	}
	it := s.bucket.Objects(ctx, &storage.Query{Prefix: path.Join(s.prefix, docID) + "/"})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("list artifacts: %w", err)
		}
		err = s.bucket.Object(attrs.Name).Delete(ctx)
		if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("delete %s: %w", attrs.Name, err)
		}
	}
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/parser"
	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome for one file of a batch.
type BatchItem struct {
	Path   string
	Result Result
	Err    error
}

// RunBatch processes files with at most concurrency in flight. Per-file
// failures are reported on the items, which keep the order of paths. The
// returned error is only set when ctx ends; files not started by then
// carry ctx's error.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string, concurrency int, done func(BatchItem)) ([]BatchItem, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	items := make([]BatchItem, len(paths))
	for i, path := range paths {
		items[i].Path = path
	}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			items[i].Err = err
			continue
		}
		g.Go(func() error {
			item := BatchItem{Path: path}
			data, err := os.ReadFile(path)
			if err != nil {
				item.Err = &parser.OpenError{Filename: filepath.Base(path), Err: err}
			} else {
				item.Result, item.Err = p.Run(ctx, filepath.Base(path), data, Hooks{})
			}
			items[i] = item
			if done != nil {
				mu.Lock()
				done(item)
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()
	return items, ctx.Err()
}

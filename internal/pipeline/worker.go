package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/parser"
)

// Worker processes queued resume jobs one at a time.
type Worker struct {
	pipeline *Pipeline
	log      *slog.Logger
}

func NewWorker(p *Pipeline, log *slog.Logger) *Worker {
	return &Worker{pipeline: p, log: log}
}

// Process runs the full pipeline for a job and records the outcome on it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	log.Info("job started", "filename", job.Filename)

	phase := string(StatusExtracting)
	res, err := w.pipeline.Run(ctx, job.Filename, job.FileData(), Hooks{
		OnPhase: func(s JobStatus) {
			phase = string(s)
			job.SetStatus(s, phase)
		},
	})
	if err != nil {
		log.Error("job failed", "phase", phase, "error", err, "kind", errorKind(err))
		job.Fail(phase, err)
		return
	}
	job.Complete(res.Record)
	log.Info("job completed", "parse_failed", res.Record.IsError())
}

// errorKind labels an error for logs and API responses.
func errorKind(err error) string {
	var openErr *parser.OpenError
	var fmtErr *parser.UnsupportedFormatError
	switch {
	case errors.As(err, &fmtErr):
		return "unsupported_format"
	case errors.As(err, &openErr):
		return "open"
	case errors.Is(err, extract.ErrCanceled), errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, extract.ErrCompletion):
		return "completion"
	default:
		return "internal"
	}
}

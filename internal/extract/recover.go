package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
)

// RecovererConfig tunes the completion call.
type RecovererConfig struct {
	MaxAttempts  int           // total tries including the first; at least 1
	RetryDelay   time.Duration // base backoff delay
	MaxDelay     time.Duration
	StrictSchema bool // replace schema-mismatched records with a sentinel
}

// Recoverer turns extracted resume text into a structured Record.
type Recoverer struct {
	completer Completer
	schema    Schema
	validator *SchemaValidator
	cfg       RecovererConfig
	log       *slog.Logger

	Stats *CompletionStats
}

func NewRecoverer(c Completer, schema Schema, cfg RecovererConfig, log *slog.Logger) (*Recoverer, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &Recoverer{
		completer: c,
		schema:    schema,
		cfg:       cfg,
		log:       log,
		Stats:     NewCompletionStats(time.Hour),
	}
	if cfg.StrictSchema {
		v, err := NewSchemaValidator(schema)
		if err != nil {
			return nil, err
		}
		r.validator = v
	}
	return r, nil
}

// Model returns the completion model identifier.
func (r *Recoverer) Model() string {
	return r.completer.Model()
}

// Recover prompts the model once (plus retries on transient failures) and
// parses its answer. A response that is not valid JSON yields the sentinel
// record, not an error. Errors are reserved for backend failures
// (ErrCompletion) and cancellation (ErrCanceled).
func (r *Recoverer) Recover(ctx context.Context, text string) (Record, error) {
	prompt := BuildPrompt(r.schema, text)
	raw, err := r.complete(ctx, prompt)
	if err != nil {
		return Record{}, err
	}

	rec, ok := ParseRecord(Clean(raw))
	r.Stats.RecordOutcome(ok)
	if !ok {
		r.log.Warn("completion.parse_failed", "model", r.completer.Model(), "raw", truncate(raw, 200))
		return rec, nil
	}
	if r.validator != nil {
		if err := r.validator.Validate(rec); err != nil {
			r.log.Warn("completion.schema_mismatch", "error", err)
			return ErrorRecord(SchemaMismatchReason), nil
		}
	}
	return rec, nil
}

// complete runs the completion with bounded, jittered retries on transient
// failures. The whole stream is drained before returning.
func (r *Recoverer) complete(ctx context.Context, prompt string) (string, error) {
	reqID := uuid.NewString()
	log := r.log.With("req_id", reqID, "model", r.completer.Model())
	attempts := 0

	text, err := retry.DoWithData(
		func() (string, error) {
			attempts++
			start := time.Now()
			out, err := Collect(ctx, r.completer, prompt)
			elapsed := time.Since(start)
			if err != nil {
				log.Warn("completion.attempt_failed", "attempt", attempts, "duration_ms", elapsed.Milliseconds(), "error", err)
				return "", err
			}
			r.Stats.Record(elapsed.Milliseconds())
			log.Info("completion.done", "attempt", attempts, "duration_ms", elapsed.Milliseconds(), "chars", len(out))
			return out, nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.cfg.MaxAttempts)),
		retry.Delay(r.cfg.RetryDelay),
		retry.MaxDelay(r.cfg.MaxDelay),
		retry.MaxJitter(max(r.cfg.RetryDelay/2, time.Millisecond)),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.RetryIf(IsRetryable),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		return text, nil
	}
	if ctxErr := context.Cause(ctx); ctxErr != nil {
		return "", fmt.Errorf("%w: %w", ErrCanceled, ctxErr)
	}
	return "", &CompletionError{Model: r.completer.Model(), Attempts: attempts, Err: err}
}

// Package app assembles the resume pipeline from configuration and runs
// the HTTP service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/api"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/config"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/layout"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/parser"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/pipeline"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
)

// ParseLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParserOptions maps config onto parser options.
func ParserOptions(cfg config.Config) parser.Options {
	return parser.Options{
		MaxPages:          cfg.MaxPages,
		FallbackPdftotext: cfg.PDFFallbackPdftotext,
	}
}

// BuildPipeline wires the completer, recoverer, extractor and store. The
// returned func releases backend clients.
func BuildPipeline(ctx context.Context, cfg config.Config, st store.ArtifactStore, log *slog.Logger) (*pipeline.Pipeline, func(), error) {
	completer, closeCompleter, err := extract.NewCompleter(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create completer: %w", err)
	}
	rec, err := extract.NewRecoverer(completer, extract.ResumeSchema, extract.RecovererConfigFrom(cfg), log)
	if err != nil {
		closeCompleter()
		return nil, nil, fmt.Errorf("create recoverer: %w", err)
	}
	extractor := layout.NewExtractor(ParserOptions(cfg), log)
	return pipeline.New(extractor, rec, st, log), closeCompleter, nil
}

// Serve runs the HTTP API until ctx is done, then drains in-flight work.
func Serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	st, closeStore, err := store.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	p, closePipeline, err := BuildPipeline(ctx, cfg, st, log)
	if err != nil {
		return err
	}
	defer closePipeline()
	p.KeepOriginal = true

	orch := pipeline.NewOrchestrator(cfg, p, log)
	orch.Start(context.WithoutCancel(ctx))

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(orch, log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLMTimeout*time.Duration(cfg.LLMMaxAttempts) + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting resume parser", "port", cfg.Port, "provider", cfg.LLMProvider, "model", cfg.LLMModel)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		orch.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown.
	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	orch.Stop()
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/pipeline"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch files...",
	Short: "Process many resumes concurrently",
	Long: `Run the full pipeline on every file given. Artifacts for each resume
are written to <dir>/<doc_id>/, where doc_id is derived from the file's
content.

Examples:
  resumeparser batch --concurrency 4 cvs/*.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, closeFn, err := buildPipeline(cmd, store.NewLocalStore(cfg.OutputDir))
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		items, err := p.RunBatch(cmd.Context(), args, batchConcurrency, func(item pipeline.BatchItem) {
			switch {
			case item.Err != nil:
				fmt.Fprintf(out, "FAIL  %s: %v\n", item.Path, item.Err)
			case item.Result.Record.IsError():
				fmt.Fprintf(out, "WARN  %s -> %s: %s\n", item.Path, item.Result.DocID, item.Result.Record.ErrorReason())
			default:
				fmt.Fprintf(out, "OK    %s -> %s\n", item.Path, item.Result.DocID)
			}
		})
		if err != nil {
			return err
		}

		failed := 0
		for _, item := range items {
			if item.Err != nil {
				failed++
			}
		}
		progress(cmd.ErrOrStderr(), "%d of %d resumes processed", len(items)-failed, len(items))
		if failed > 0 {
			return fmt.Errorf("%d resume(s) failed", failed)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "resumes processed in parallel")
}

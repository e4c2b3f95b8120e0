package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/pipeline"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract text and recover the structured record",
	Long: `Run the full pipeline on one resume.

The extracted text is written to <dir>/extracted_text.txt and the record to
<dir>/extracted_resume_info.json. Without a file argument the first
sample_resume*.pdf in --dir is used.

Examples:
  resumeparser extract
  resumeparser extract cv.pdf -o yaml
  resumeparser extract --dir out cv.docx`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := inputPath(args)
		if err != nil {
			return err
		}
		p, closeFn, err := buildPipeline(cmd, store.NewLocalStore(cfg.OutputDir))
		if err != nil {
			return err
		}
		defer closeFn()

		rec, err := runExtract(cmd, p, path)
		if err != nil {
			return err
		}
		progress(cmd.ErrOrStderr(), "Extracted Resume Information:")
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

// runExtract writes the text artifact as soon as it exists, then the
// record. Nothing is written when the document cannot be opened.
func runExtract(cmd *cobra.Command, p *pipeline.Pipeline, path string) (extract.Record, error) {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	progress(stderr, "Processing file: %s", path)
	text, err := extractText(ctx, p, path)
	if err != nil {
		return extract.Record{}, err
	}
	if err := p.Store().Put(ctx, "", store.TextArtifact, []byte(text)); err != nil {
		return extract.Record{}, err
	}
	progress(stderr, "Extracted text saved to: %s", artifactPath(store.TextArtifact))

	progress(stderr, "Extracting structured resume information with %s...", p.Recoverer().Model())
	rec, err := p.Recoverer().Recover(ctx, text)
	if err != nil {
		return extract.Record{}, fmt.Errorf("could not extract structured resume information: %w", err)
	}
	if rec.IsError() {
		progress(stderr, "Warning: %s", rec.ErrorReason())
	}

	data, err := extract.EncodeIndent(rec)
	if err != nil {
		return extract.Record{}, err
	}
	if err := p.Store().Put(ctx, "", store.RecordArtifact, data); err != nil {
		return extract.Record{}, err
	}
	progress(stderr, "Extracted data saved to: %s", artifactPath(store.RecordArtifact))
	return rec, nil
}

func extractText(ctx context.Context, p *pipeline.Pipeline, path string) (string, error) {
	data, err := readInput(path)
	if err != nil {
		return "", err
	}
	return p.Text(ctx, baseName(path), data)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
)

var recoverCmd = &cobra.Command{
	Use:   "recover [textfile]",
	Short: "Recover the structured record from extracted text",
	Long: `Send previously extracted text to the model and print the record.

Defaults to <dir>/extracted_text.txt. The record is written to
<dir>/extracted_resume_info.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(cfg.OutputDir, store.TextArtifact)
		if len(args) > 0 {
			path = args[0]
		}
		progress(cmd.ErrOrStderr(), "Reading extracted resume text...")
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("extracted text file not found: %w", err)
		}

		st := store.NewLocalStore(cfg.OutputDir)
		p, closeFn, err := buildPipeline(cmd, st)
		if err != nil {
			return err
		}
		defer closeFn()

		progress(cmd.ErrOrStderr(), "Extracting structured resume information...")
		rec, err := p.Recoverer().Recover(cmd.Context(), string(text))
		if err != nil {
			return fmt.Errorf("could not extract structured resume information: %w", err)
		}
		data, err := extract.EncodeIndent(rec)
		if err != nil {
			return err
		}
		if err := st.Put(cmd.Context(), "", store.RecordArtifact, data); err != nil {
			return err
		}
		progress(cmd.ErrOrStderr(), "Extracted data saved to: %s", artifactPath(store.RecordArtifact))
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

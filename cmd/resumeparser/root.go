package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/app"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/config"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/pipeline"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
)

var (
	cfgFile      string
	workDir      string
	outputFormat string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resumeparser",
	Short: "Turn resumes into structured JSON with an LLM",
	Long: `resumeparser extracts reading-order text from a resume (PDF, DOCX,
Markdown, HTML or plain text) and asks a language model to recover a
structured record from it: contact details, skills, work experience,
education, certifications and more.

Multi-column PDF layouts are linearized column by column so the model sees
each column's text contiguously.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "json" && outputFormat != "yaml" {
			return fmt.Errorf("unknown output format %q (want json or yaml)", outputFormat)
		}
		var err error
		cfg, err = config.LoadFile(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("dir") || cfg.OutputDir == "" {
			cfg.OutputDir = workDir
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: app.ParseLevel(cfg.LogLevel),
		}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (yaml, json or toml); environment variables take precedence",
	)
	rootCmd.PersistentFlags().StringVar(
		&workDir, "dir", "resume", "directory holding input resumes and written artifacts",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "json", "output format: json or yaml",
	)

	rootCmd.AddCommand(extractCmd, textCmd, recoverCmd, batchCmd, serveCmd)
}

// buildPipeline validates the completion settings and wires a pipeline
// that writes artifacts to st.
func buildPipeline(cmd *cobra.Command, st store.ArtifactStore) (*pipeline.Pipeline, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return app.BuildPipeline(cmd.Context(), cfg, st, logger)
}

package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/app"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the resume parsing HTTP API.

Routes:
  GET    /health
  POST   /api/resumes              multipart field "resume", returns the record
  POST   /api/resumes/text         extracted text only
  POST   /api/resumes/jobs         async processing, returns a poll URL
  GET    /api/resumes/jobs/{id}
  GET    /api/resumes/{doc_id}     stored record (?artifact=text for the text)
  DELETE /api/resumes/{doc_id}
  GET    /api/stats/llm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: app.ParseLevel(cfg.LogLevel)}))
		return app.Serve(cmd.Context(), cfg, log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default from PORT)")
}

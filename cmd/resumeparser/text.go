package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/app"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/document"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/layout"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/parser"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
)

var explain bool

var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Extract reading-order text only",
	Long: `Linearize a resume into text without calling the model.

The text is printed and written to <dir>/extracted_text.txt. With --explain
each block's column assignment is printed instead, which helps when a
two-column layout comes out in the wrong order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := inputPath(args)
		if err != nil {
			return err
		}
		extractor := layout.NewExtractor(app.ParserOptions(cfg), logger)

		if explain {
			data, err := readInput(path)
			if err != nil {
				return err
			}
			doc, err := extractor.Load(cmd.Context(), bytes.NewReader(data), baseName(path))
			if err != nil {
				return err
			}
			printExplain(cmd, doc)
			return nil
		}

		text, err := extractor.ExtractFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		if err := store.NewLocalStore(cfg.OutputDir).Put(cmd.Context(), "", store.TextArtifact, []byte(text)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		progress(cmd.ErrOrStderr(), "Extracted text saved to: %s", artifactPath(store.TextArtifact))
		return nil
	},
}

func printExplain(cmd *cobra.Command, doc *document.Document) {
	out := cmd.OutOrStdout()
	for _, page := range doc.Pages {
		mid := page.Width / 2
		mode := "single-column"
		if layout.IsMultiColumn(page.Blocks, mid) {
			mode = "multi-column"
		}
		fmt.Fprintf(out, "%s  %s, width %.1f, midline %.1f\n", layout.PageMarker(page.Number), mode, page.Width, mid)
		for _, a := range layout.AssignColumns(page) {
			first, _, _ := strings.Cut(strings.TrimSpace(a.Block.Text), "\n")
			if a.SpansMidline {
				first += "  (spans midline)"
			}
			fmt.Fprintf(out, "  %-10s [%6.1f %6.1f %6.1f %6.1f] %s\n",
				a.Column, a.Block.Left, a.Block.Top, a.Block.Right, a.Block.Bottom, first)
		}
	}
}

func init() {
	textCmd.Flags().BoolVar(&explain, "explain", false, "print column assignments instead of text")
}

func readInput(path string) ([]byte, error) {
	// Reject unknown formats before touching the file.
	if _, err := parser.ForFile(path, parser.Options{}); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &parser.OpenError{Filename: baseName(path), Err: err}
	}
	return data, nil
}

func baseName(path string) string {
	return filepath.Base(path)
}

func artifactPath(name string) string {
	return filepath.Join(cfg.OutputDir, name)
}

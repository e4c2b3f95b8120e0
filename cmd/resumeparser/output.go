package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
)

// printRecord writes the record to w in the selected output format.
func printRecord(w io.Writer, rec extract.Record) error {
	if outputFormat == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	}
	data, err := extract.EncodeIndent(rec)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// progress prints a status line for humans on stderr.
func progress(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// defaultResume finds the first sample_resume*.pdf in dir.
func defaultResume(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "sample_resume*.pdf"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no sample_resume*.pdf found in %s", dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// inputPath returns args[0], or the default resume when no file is given.
func inputPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return defaultResume(cfg.OutputDir)
}

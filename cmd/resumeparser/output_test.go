package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
)

func TestDefaultResume(t *testing.T) {
	dir := t.TempDir()
	if _, err := defaultResume(dir); err == nil {
		t.Fatal("expected error for empty dir")
	}
	for _, name := range []string{"sample_resume_b.pdf", "sample_resume_a.pdf", "other.pdf", "sample_resume.txt"} {
		os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644)
	}
	got, err := defaultResume(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(got) != "sample_resume_a.pdf" {
		t.Errorf("expected first match, got %s", got)
	}
}

func TestPrintRecord(t *testing.T) {
	rec, _ := extract.ParseRecord(`{"name": "Jane", "skills": ["Go"]}`)

	tests := []struct {
		format string
		want   string
	}{
		{"json", "{\n    \"name\": \"Jane\",\n    \"skills\": [\n        \"Go\"\n    ]\n}\n"},
		{"yaml", "name: Jane\nskills:\n  - Go\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			outputFormat = tt.format
			defer func() { outputFormat = "json" }()

			var buf bytes.Buffer
			if err := printRecord(&buf, rec); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestTextCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cv.md")
	os.WriteFile(input, []byte("# Jane Doe\n\n- Go\n- SQL\n"), 0o644)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"text", "--dir", dir, input})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("text command failed: %v\n%s", err, stderr.String())
	}
	want := "--- PAGE 1 ---\n\nJane Doe\nGo\nSQL\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	saved, err := os.ReadFile(filepath.Join(dir, "extracted_text.txt"))
	if err != nil || string(saved)+"\n" != want {
		t.Errorf("unexpected saved text %q (%v)", saved, err)
	}
}

func TestTextCommand_MissingFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"text", "--dir", dir, filepath.Join(dir, "missing.pdf")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := os.Stat(filepath.Join(dir, "extracted_text.txt")); !os.IsNotExist(err) {
		t.Error("no artifact should be written when the file cannot be opened")
	}
}

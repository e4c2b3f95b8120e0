package extract

import (
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"name\": \"Jane\"}\n```", "{\"name\": \"Jane\"}"},
		{"bare fence", "```\n[1, 2]\n```", "[1, 2]"},
		{"fence mid-string", "Here you go: ```json {\"a\": 1} ``` done", "Here you go:  {\"a\": 1}  done"},
		{"no fence", "  {\"a\": 1}\n", "{\"a\": 1}"},
		{"json word kept", "{\"lang\": \"json\"}", "{\"lang\": \"json\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"literal newline in string", "{\"d\": \"line one\nline two\"}", "{\"d\": \"line one line two\"}"},
		{"escaped newline kept", `{"d": "a\` + "\n" + `b"}`, `{"d": "a\` + "\n" + `b"}`},
		{"leading newline", "\nx", " x"},
		{"double newline after backslash", "\\\n\n", "\\\n "},
		{"no newline", "abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairNewlines(tt.in); got != tt.want {
				t.Errorf("RepairNewlines(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairNewlines_CollapsesStructuralNewlines(t *testing.T) {
	// Newlines between members are not inside strings but still collapse.
	in := "{\n\"name\": \"Jane\",\n\"skills\": [\"Go\"]\n}"
	got := RepairNewlines(in)
	want := "{ \"name\": \"Jane\", \"skills\": [\"Go\"] }"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	rec, ok := ParseRecord(got)
	if !ok {
		t.Fatalf("collapsed JSON should still parse, got %v", rec.Value())
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"name\": \"Jane\"}\n```",
		"`````json`",
		"``````",
		"``\n`",
		"````json\n{}\n````",
		"  text with \\\n escaped and\nraw newlines  ",
		"```json```json```",
		"\n\n```\n\n",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

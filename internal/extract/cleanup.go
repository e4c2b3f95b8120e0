package extract

import (
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("```json|```")

// StripCodeFences removes every ``` and ```json marker, wherever it occurs,
// and trims surrounding whitespace.
func StripCodeFences(s string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(s, ""))
}

// RepairNewlines replaces each newline not immediately preceded by a
// backslash with a single space. It cannot tell a newline inside a string
// literal from one between tokens, so both are collapsed; the latter is
// harmless since JSON ignores inter-token whitespace.
func RepairNewlines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c == '\n' && (i == 0 || s[i-1] != '\\') {
			b[i] = ' '
		}
	}
	return string(b)
}

// Clean applies fence stripping then newline repair. It is idempotent.
func Clean(raw string) string {
	return RepairNewlines(StripCodeFences(raw))
}

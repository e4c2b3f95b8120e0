package extract

import (
	"context"
	"iter"
	"strings"
)

// Completer turns a single user prompt into text. Backends that stream yield
// chunks in delivery order; others yield the whole response once.
type Completer interface {
	Model() string
	Stream(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// Collect drains a completion stream into one string. Nothing downstream
// sees a partial response.
func Collect(ctx context.Context, c Completer, prompt string) (string, error) {
	var sb strings.Builder
	for chunk, err := range c.Stream(ctx, prompt) {
		if err != nil {
			return "", err
		}
		sb.WriteString(chunk)
	}
	return sb.String(), nil
}

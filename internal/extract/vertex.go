package extract

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// VertexCompleter streams Gemini completions through Vertex AI.
type VertexCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	// timeout bounds one streamed request; zero means no limit.
	timeout time.Duration
}

func NewVertexCompleter(ctx context.Context, projectID, region, model string, timeout time.Duration) (*VertexCompleter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	gm := client.GenerativeModel(model)
	gm.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.0),
	}
	return &VertexCompleter{client: client, model: gm, name: model, timeout: timeout}, nil
}

func (c *VertexCompleter) Model() string {
	return c.name
}

func (c *VertexCompleter) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		callCtx, cancel := c.callContext(ctx)
		defer cancel()

		it := c.model.GenerateContentStream(callCtx, genai.Text(prompt))
		for {
			resp, err := it.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				yield("", mapVertexError(ctx, callCtx, err))
				return
			}
			if text := responseText(resp); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}

// Close releases the underlying gRPC connection.
func (c *VertexCompleter) Close() {
	c.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

func (c *VertexCompleter) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// mapVertexError classifies a stream error. ctx is the caller's context,
// callCtx the one bounded by the request timeout.
func mapVertexError(ctx, callCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &RetryableError{Message: fmt.Sprintf("vertex request timed out: %v", err)}
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.ResourceExhausted, codes.Internal, codes.DeadlineExceeded:
		return &RetryableError{Message: err.Error()}
	}
	return err
}

package extract

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultOpenAIBaseURL is Ollama's OpenAI-compatible endpoint.
const DefaultOpenAIBaseURL = "http://localhost:11434/v1"

// OpenAICompleter streams chat completions from any OpenAI-compatible API.
type OpenAICompleter struct {
	client     openai.Client
	model      string
	httpClient *http.Client
}

func NewOpenAICompleter(baseURL, apiKey, model string, timeout time.Duration) *OpenAICompleter {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if apiKey == "" {
		// Ollama ignores the key but the header must be present.
		apiKey = "ollama"
	}
	httpClient := &http.Client{Timeout: timeout}
	return &OpenAICompleter{
		client: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(apiKey),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
		model:      model,
		httpClient: httpClient,
	}
}

func (c *OpenAICompleter) Model() string {
	return c.model
}

func (c *OpenAICompleter) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Temperature: openai.Float(0),
		})
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			if !yield(chunk.Choices[0].Delta.Content, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			yield("", mapOpenAIError(ctx, err))
		}
	}
}

// Close releases idle connections.
func (c *OpenAICompleter) Close() {
	c.httpClient.CloseIdleConnections()
}

func mapOpenAIError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if retryableStatus(apiErr.StatusCode) {
			return &RetryableError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
		return err
	}
	// Transport-level failures (connection refused, reset) are transient.
	return &RetryableError{Message: err.Error()}
}

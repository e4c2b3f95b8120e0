package extract

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrCompletion matches any failure of the completion backend.
	ErrCompletion = errors.New("completion failed")
	// ErrCanceled is returned when the caller's context ends first.
	ErrCanceled = errors.New("completion canceled")
)

// CompletionError wraps the last backend error after retries ran out.
type CompletionError struct {
	Model    string
	Attempts int
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion with %s failed after %d attempt(s): %v", e.Model, e.Attempts, e.Err)
}

func (e *CompletionError) Unwrap() []error {
	return []error{ErrCompletion, e.Err}
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("retryable error: %s", truncate(e.Message, 200))
	}
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// retryableStatus reports whether an HTTP status is transient.
func retryableStatus(code int) bool {
	return code == 429 || code >= 500
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

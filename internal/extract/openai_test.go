package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sseServer(t *testing.T, chunks []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var req map[string]any
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req["model"] != "gemma3:4b" || req["stream"] != true {
			t.Errorf("unexpected request %v", req)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for i, c := range chunks {
			content, _ := json.Marshal(c)
			fmt.Fprintf(w, "data: {\"id\":\"c%d\",\"object\":\"chat.completion.chunk\",\"created\":1,\"model\":\"gemma3:4b\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%s}}]}\n\n", i, content)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestOpenAICompleter_Stream(t *testing.T) {
	srv := sseServer(t, []string{"```json\n", `{"name": `, `"Jane"}`, "\n```"})
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL+"/v1", "", "gemma3:4b", 5*time.Second)
	defer c.Close()

	out, err := Collect(context.Background(), c, "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "```json\n{\"name\": \"Jane\"}\n```"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestOpenAICompleter_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{"error":{"message":"loading model","type":"server_error"}}`)
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL+"/v1", "", "gemma3:4b", 5*time.Second)
	_, err := Collect(context.Background(), c, "prompt")

	var re *RetryableError
	if !errors.As(err, &re) || re.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected retryable 503, got %v", err)
	}
}

func TestOpenAICompleter_ClientErrorIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"message":"model not found","type":"not_found"}}`)
	}))
	defer srv.Close()

	c := NewOpenAICompleter(srv.URL+"/v1", "", "gemma3:4b", 5*time.Second)
	_, err := Collect(context.Background(), c, "prompt")
	if err == nil || IsRetryable(err) {
		t.Fatalf("expected permanent error, got %v", err)
	}
}

func TestOpenAICompleter_UnreachableIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewOpenAICompleter(url+"/v1", "", "gemma3:4b", time.Second)
	_, err := Collect(context.Background(), c, "prompt")
	if !IsRetryable(err) {
		t.Fatalf("expected transport failure to be retryable, got %v", err)
	}
}

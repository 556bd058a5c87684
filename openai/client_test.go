package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ehdgus4173/CheckMate/api"
)

func TestClientComplete(t *testing.T) {
	const responseBody = `{"choices":[{"message":{"content":"{\"status\":\"FULFILLED\"}"}}]}`

	var gotReq api.ChatRequest
	var gotAuth, gotContentType, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path

		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}

		w.Write([]byte(responseBody))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	raw, err := client.Complete(context.Background(), api.ChatRequest{
		Model:       "gpt-4o-mini",
		Temperature: 0,
		Messages:    []api.ChatMessage{{Role: "user", Content: "prompt"}},
	})
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}

	if string(raw) != responseBody {
		t.Errorf("Complete() = %q, want the raw response body", raw)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q, want /chat/completions", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q, want bearer token", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", gotContentType)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", gotReq.Model)
	}
	if gotReq.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, want one user message", gotReq.Messages)
	}
}

func TestClientCompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	_, err := client.Complete(context.Background(), api.ChatRequest{Model: "gpt-4o-mini"})
	if err == nil {
		t.Fatal("Complete() expected an error on 429")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Errorf("error = %v, want the status code preserved", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %v, want the body preserved for diagnostics", err)
	}
}

func TestClientCompleteContextCancel(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := NewClient("test-key", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Complete(ctx, api.ChatRequest{Model: "gpt-4o-mini"}); err == nil {
		t.Fatal("Complete() expected an error when the context is canceled")
	}
}

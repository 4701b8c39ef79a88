package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillsenselab/meetingminds/llm"
)

func TestComplete(t *testing.T) {
	var gotReq ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:           gotReq.Model,
			Message:         ollamaChatMessage{Role: "assistant", Content: "A short summary."},
			Done:            true,
			PromptEvalCount: 120,
			EvalCount:       18,
		})
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL, Model: "llama3"})
	resp, err := p.Complete(context.Background(), llm.CompletionRequest{
		SystemPrompt: "You summarize meetings.",
		Messages:     []llm.Message{{Role: "user", Content: "Summarize this."}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.Content != "A short summary." {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 138 {
		t.Errorf("expected 138 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if gotReq.Stream {
		t.Error("completion requests must not stream")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("system prompt not prepended: %+v", gotReq.Messages)
	}
	if gotReq.Model != "llama3" {
		t.Errorf("expected configured model, got %q", gotReq.Model)
	}
}

func TestComplete_RequestOverrides(t *testing.T) {
	var gotReq ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{Done: true})
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL, Model: "llama3", Temperature: 0.2})
	_, err := p.Complete(context.Background(), llm.CompletionRequest{
		Model:       "mistral",
		Temperature: 0.9,
		Messages:    []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotReq.Model != "mistral" {
		t.Errorf("expected request model to win, got %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.9 {
		t.Errorf("expected request temperature to win, got %v", gotReq.Temperature)
	}
}

func TestComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProvider(Config{BaseURL: srv.URL})
	if _, err := p.Complete(context.Background(), llm.CompletionRequest{}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	p := NewProvider(Config{BaseURL: srv.URL})
	if !p.IsAvailable(context.Background()) {
		t.Error("expected available when /api/tags returns 200")
	}
	srv.Close()
	if p.IsAvailable(context.Background()) {
		t.Error("expected unavailable when the server is down")
	}
}

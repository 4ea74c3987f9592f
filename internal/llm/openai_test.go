package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
)

func TestOpenAIChatCompletion(t *testing.T) {
	var captured struct {
		Model       string        `json:"model"`
		Temperature float64       `json:"temperature"`
		Messages    []ChatMessage `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q, want bearer key", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"A cozy reading corner."}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "", 5*time.Second, WithOpenAIBaseURL(srv.URL))
	got, err := client.ChatCompletion(context.Background(), []ChatMessage{
		{Role: "user", Content: "Design a study room."},
	}, 0.7)
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if got != "A cozy reading corner." {
		t.Errorf("completion = %q", got)
	}
	if captured.Model != "gpt-4" {
		t.Errorf("model = %q, want the default gpt-4", captured.Model)
	}
	if captured.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", captured.Temperature)
	}
}

func TestOpenAIChatCompletionRejectedOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("bad-key", "gpt-4", 5*time.Second, WithOpenAIBaseURL(srv.URL))
	_, err := client.ChatCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 0.7)
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind := chain.Classify(err); kind != chain.KindRejected {
		t.Errorf("failure kind = %q, want %q", kind, chain.KindRejected)
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("error = %q, want the status code preserved", err)
	}
}

func TestOpenAIChatCompletionMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"content":"   "}}]}`},
		{"not json", `<html>gateway error</html>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewOpenAIClient("test-key", "gpt-4", 5*time.Second, WithOpenAIBaseURL(srv.URL))
			_, err := client.ChatCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 0.7)
			if err == nil {
				t.Fatal("expected an error")
			}
			if kind := chain.Classify(err); kind != chain.KindMalformed {
				t.Errorf("failure kind = %q, want %q", kind, chain.KindMalformed)
			}
		})
	}
}

func TestTextProviderParsesLayoutMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"LAYOUT 1:\nDesk by the window, shelves on the left."}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", "gpt-4", 5*time.Second, WithOpenAIBaseURL(srv.URL))
	provider := NewTextProvider("openai", client)

	got, err := provider.Invoke(context.Background(), design.Request{
		RoomType:     "Home Office",
		Style:        "Minimalist",
		BudgetRange:  "Under $1,000",
		SizeCategory: "Small (< 100 sq ft)",
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got != "Desk by the window, shelves on the left." {
		t.Errorf("layout = %q, want the marker stripped", got)
	}
	if provider.Name() != "openai" {
		t.Errorf("name = %q", provider.Name())
	}
}

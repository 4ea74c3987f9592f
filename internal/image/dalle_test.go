package image

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homedesignai/internal/chain"
)

func TestDalleInvoke(t *testing.T) {
	var captured struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		N      int    `json:"n"`
		Size   string `json:"size"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("path = %q, want /images/generations", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":[{"url":"https://oai.example.com/render.png"}]}`))
	}))
	defer srv.Close()

	client := NewDalleClient("test-key", "", 5*time.Second).WithBaseURL(srv.URL)
	ref, err := client.Invoke(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if ref.URL != "https://oai.example.com/render.png" {
		t.Errorf("url = %q", ref.URL)
	}
	if captured.Model != "dall-e-3" {
		t.Errorf("model = %q, want the default dall-e-3", captured.Model)
	}
	if captured.N != 1 || captured.Size != "1024x1024" {
		t.Errorf("n = %d, size = %q", captured.N, captured.Size)
	}
	if !strings.Contains(captured.Prompt, "Living Room") || !strings.Contains(captured.Prompt, "Industrial") {
		t.Errorf("prompt missing request fields: %q", captured.Prompt)
	}
}

func TestDalleInvokeRejectedOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"content policy violation"}}`))
	}))
	defer srv.Close()

	client := NewDalleClient("test-key", "dall-e-3", 5*time.Second).WithBaseURL(srv.URL)
	_, err := client.Invoke(context.Background(), imageRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind := chain.Classify(err); kind != chain.KindRejected {
		t.Errorf("failure kind = %q, want %q", kind, chain.KindRejected)
	}
	if !strings.Contains(err.Error(), "content policy violation") {
		t.Errorf("error = %q, want the upstream message preserved", err)
	}
}

func TestDalleInvokeMalformedOnEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewDalleClient("test-key", "dall-e-3", 5*time.Second).WithBaseURL(srv.URL)
	_, err := client.Invoke(context.Background(), imageRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind := chain.Classify(err); kind != chain.KindMalformed {
		t.Errorf("failure kind = %q, want %q", kind, chain.KindMalformed)
	}
}

package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
)

func imageRequest() design.Request {
	return design.Request{
		RoomType:     "Living Room",
		Style:        "Industrial",
		BudgetRange:  "$5,000 - $15,000",
		SizeCategory: "Large (200-400 sq ft)",
		Colors:       []string{"Gray"},
	}
}

func TestLexicaInvoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		query := r.URL.Query().Get("q")
		for _, want := range []string{"Industrial", "Living Room", "interior design", "Gray"} {
			if !strings.Contains(query, want) {
				t.Errorf("query %q missing %q", query, want)
			}
		}
		_, _ = w.Write([]byte(`{"images":[{"src":"https://lexica.example.com/a.jpg"},{"src":"https://lexica.example.com/b.jpg"}]}`))
	}))
	defer srv.Close()

	client := NewLexicaClient(5 * time.Second).WithBaseURL(srv.URL)
	ref, err := client.Invoke(context.Background(), imageRequest())
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if ref.URL != "https://lexica.example.com/a.jpg" {
		t.Errorf("url = %q, want the first hit", ref.URL)
	}
}

func TestLexicaInvokeRejectedOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewLexicaClient(5 * time.Second).WithBaseURL(srv.URL)
	_, err := client.Invoke(context.Background(), imageRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind := chain.Classify(err); kind != chain.KindRejected {
		t.Errorf("failure kind = %q, want %q", kind, chain.KindRejected)
	}
}

func TestLexicaInvokeMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no results", `{"images":[]}`},
		{"blank src", `{"images":[{"src":"  "}]}`},
		{"not json", `<html></html>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewLexicaClient(5 * time.Second).WithBaseURL(srv.URL)
			_, err := client.Invoke(context.Background(), imageRequest())
			if err == nil {
				t.Fatal("expected an error")
			}
			if kind := chain.Classify(err); kind != chain.KindMalformed {
				t.Errorf("failure kind = %q, want %q", kind, chain.KindMalformed)
			}
		})
	}
}

func TestLexicaInvokeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client := NewLexicaClient(5 * time.Second).WithBaseURL(srv.URL)
	_, err := client.Invoke(context.Background(), imageRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	if kind := chain.Classify(err); kind != chain.KindTransport {
		t.Errorf("failure kind = %q, want %q", kind, chain.KindTransport)
	}
}

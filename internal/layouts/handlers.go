// Package layouts exposes the layout generation API over HTTP.
package layouts

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"homedesignai/internal/design"
	"homedesignai/internal/events"
	"homedesignai/internal/export"
	"homedesignai/internal/layout"
	"homedesignai/internal/storage"
)

// Handler bundles dependencies for layout endpoints.
type Handler struct {
	Store        storage.Store
	Orchestrator *layout.Orchestrator
	Events       *events.Broker
}

// Create handles POST /api/layouts: validate the form payload, run both
// provider chains and persist the merged result. Provider failures degrade
// the result; they never turn into an HTTP error.
func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req design.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	req.Normalize()

	if errs := req.Validate(); len(errs) > 0 {
		http.Error(w, joinErrors(errs), http.StatusBadRequest)
		return
	}

	result := h.Orchestrator.Generate(r.Context(), req)

	stored, err := h.Store.CreateLayout(r.Context(), storage.Layout{
		ID:            result.ID,
		Request:       result.Request,
		Description:   result.Description,
		ImageURL:      result.Image.URL,
		TextProvider:  result.Text.Winner,
		ImageProvider: result.Images.Winner,
		TextAttempts:  result.Text.Attempts,
		ImageAttempts: result.Images.Attempts,
		CreatedAt:     result.CreatedAt,
	})
	if err != nil {
		log.Printf("persist layout failed: %v", err)
		http.Error(w, "could not store layout", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(stored)
}

// List handles GET /api/layouts.
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.Store.ListLayouts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, layouts)
}

// Get handles GET /api/layouts/{id}.
func (h Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := h.Store.GetLayout(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "layout not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, item)
}

// Delete handles DELETE /api/layouts/{id}.
func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteLayout(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "layout not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/layouts/export?format=jsonl|text.
func (h Handler) Export(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.Store.ListLayouts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	records := export.BuildRecords(layouts)

	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "jsonl":
		w.Header().Set("Content-Type", "application/jsonl")
		w.Header().Set("Content-Disposition", `attachment; filename="layouts.jsonl"`)
		if err := export.EncodeJSONL(w, records); err != nil {
			log.Printf("export jsonl failed: %v", err)
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="layouts.txt"`)
		if err := export.EncodeText(w, records); err != nil {
			log.Printf("export text failed: %v", err)
		}
	default:
		http.Error(w, "unsupported format (use jsonl or text)", http.StatusBadRequest)
	}
}

// Catalog handles GET /api/catalog and feeds the frontend form options.
func (h Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, design.DefaultCatalog())
}

// StreamEvents handles GET /api/events as a server-sent event stream of
// generation progress.
func (h Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	if h.Events == nil {
		http.Error(w, "events inactive", http.StatusServiceUnavailable)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Events.Subscribe()
	defer h.Events.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case evt := <-ch:
			payload, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

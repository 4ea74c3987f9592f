// Package layout composes the text and image fallback chains into a single
// "produce layout" operation.
package layout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
	"homedesignai/internal/events"
	"homedesignai/internal/image"
)

// ErrNoProviders is returned when a chain is configured without any providers.
var ErrNoProviders = errors.New("layout: chain has no configured providers")

// Result is the immutable outcome of one generation. Provider failure is data
// here, never an error: an empty Description or Image.URL simply means that
// chain was exhausted, and the attempt history says why.
type Result struct {
	ID          string                         `json:"id"`
	Request     design.Request                 `json:"request"`
	Description string                         `json:"text_description,omitempty"`
	Image       image.Reference                `json:"image_reference"`
	Text        chain.Outcome[string]          `json:"-"`
	Images      chain.Outcome[image.Reference] `json:"-"`
	CreatedAt   time.Time                      `json:"created_at"`
}

// Orchestrator owns one text chain and one image chain.
type Orchestrator struct {
	text   []chain.Provider[string]
	images []chain.Provider[image.Reference]
	events *events.Broker
}

// New wires an orchestrator. Both chains must carry at least one provider;
// an empty chain is a deployment mistake and is rejected here rather than at
// request time.
func New(text []chain.Provider[string], images []chain.Provider[image.Reference], broker *events.Broker) (*Orchestrator, error) {
	if len(text) == 0 || len(images) == 0 {
		return nil, ErrNoProviders
	}
	return &Orchestrator{text: text, images: images, events: broker}, nil
}

// Generate runs both chains and merges their outcomes. The two chains are
// independent, so they run concurrently. The returned error is always nil for
// provider failures of any depth; Generate only reflects them in the result.
func (o *Orchestrator) Generate(ctx context.Context, req design.Request) Result {
	result := Result{
		ID:        uuid.NewString(),
		Request:   req,
		CreatedAt: time.Now(),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Text = chain.Run(ctx, o.text, req)
	}()
	go func() {
		defer wg.Done()
		result.Images = chain.Run(ctx, o.images, req)
	}()
	wg.Wait()

	if result.Text.OK() {
		result.Description = result.Text.Content
	}
	if result.Images.OK() {
		result.Image = result.Images.Content
	}

	o.publish(result)
	return result
}

func (o *Orchestrator) publish(result Result) {
	if o.events == nil {
		return
	}
	o.events.Publish(events.Event{
		LayoutID: result.ID,
		Stage:    "text",
		Provider: result.Text.Winner,
		OK:       result.Text.OK(),
		Detail:   lastFailure(result.Text.Attempts),
	})
	o.events.Publish(events.Event{
		LayoutID: result.ID,
		Stage:    "image",
		Provider: result.Images.Winner,
		OK:       result.Images.OK(),
		Detail:   lastFailure(result.Images.Attempts),
	})
	o.events.Publish(events.Event{
		LayoutID: result.ID,
		Stage:    "done",
		OK:       result.Text.OK() || result.Images.OK(),
	})
}

func lastFailure(attempts []chain.Attempt) string {
	for i := len(attempts) - 1; i >= 0; i-- {
		if !attempts[i].OK {
			return attempts[i].Reason
		}
	}
	return ""
}

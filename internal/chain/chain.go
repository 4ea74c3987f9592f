// Package chain runs an ordered list of providers until one succeeds,
// keeping a full record of every attempt for diagnostics.
package chain

import (
	"context"
	"errors"
	"fmt"

	"homedesignai/internal/design"
)

// FailureKind classifies why a provider attempt failed.
type FailureKind string

const (
	// KindTransport covers network errors, timeouts and cancelled contexts.
	KindTransport FailureKind = "transport"
	// KindRejected covers non-success statuses and explicit API error bodies.
	KindRejected FailureKind = "rejected"
	// KindMalformed covers success statuses with unusable payloads.
	KindMalformed FailureKind = "malformed"
)

// Provider is a single external source able to serve a design request.
// Invoke performs exactly one outbound call; retries across providers are the
// runner's job, never the provider's.
type Provider[T any] interface {
	Name() string
	Invoke(ctx context.Context, req design.Request) (T, error)
}

// Attempt records one provider invocation, success or failure.
type Attempt struct {
	Provider string      `json:"provider"`
	OK       bool        `json:"ok"`
	Kind     FailureKind `json:"kind,omitempty"`
	Reason   string      `json:"reason,omitempty"`
}

// Outcome is the ordered record of every attempt plus the first success.
type Outcome[T any] struct {
	Attempts []Attempt
	Content  T
	Winner   string
}

// OK reports whether any provider in the chain succeeded.
func (o Outcome[T]) OK() bool { return o.Winner != "" }

// FailureError tags a provider error with its classification.
type FailureError struct {
	Kind FailureKind
	Err  error
}

func (e *FailureError) Error() string { return fmt.Sprintf("%s: %v", e.Kind, e.Err) }

func (e *FailureError) Unwrap() error { return e.Err }

// Rejected marks an error as an explicit provider rejection.
func Rejected(err error) error {
	return &FailureError{Kind: KindRejected, Err: err}
}

// Malformed marks an error as an unusable payload from a 2xx response.
func Malformed(err error) error {
	return &FailureError{Kind: KindMalformed, Err: err}
}

// Classify returns the failure kind recorded on err, defaulting to transport.
func Classify(err error) FailureKind {
	var failure *FailureError
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return KindTransport
}

// Run invokes providers in priority order and stops at the first success.
// A fully failed chain is a valid outcome, not an error: the caller inspects
// Outcome.OK and the attempt history.
func Run[T any](ctx context.Context, providers []Provider[T], req design.Request) Outcome[T] {
	var outcome Outcome[T]
	for _, provider := range providers {
		content, err := provider.Invoke(ctx, req)
		if err != nil {
			outcome.Attempts = append(outcome.Attempts, Attempt{
				Provider: provider.Name(),
				Kind:     Classify(err),
				Reason:   err.Error(),
			})
			continue
		}
		outcome.Attempts = append(outcome.Attempts, Attempt{
			Provider: provider.Name(),
			OK:       true,
		})
		outcome.Content = content
		outcome.Winner = provider.Name()
		break
	}
	return outcome
}

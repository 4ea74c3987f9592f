package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
)

// ErrNotFound indicates that a layout could not be located in the backing store.
var ErrNotFound = errors.New("layout not found")

// Layout is one generated result together with the request that produced it
// and the full provider diagnostics. Records are append-only.
type Layout struct {
	ID            string          `json:"id"`
	Request       design.Request  `json:"request"`
	Description   string          `json:"text_description,omitempty"`
	ImageURL      string          `json:"image_reference,omitempty"`
	TextProvider  string          `json:"text_provider,omitempty"`
	ImageProvider string          `json:"image_provider,omitempty"`
	TextAttempts  []chain.Attempt `json:"text_attempts"`
	ImageAttempts []chain.Attempt `json:"image_attempts"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Store defines the persistence behaviors the application relies on.
type Store interface {
	CreateLayout(ctx context.Context, input Layout) (Layout, error)
	ListLayouts(ctx context.Context) ([]Layout, error)
	GetLayout(ctx context.Context, id string) (Layout, error)
	DeleteLayout(ctx context.Context, id string) error
	Close()
}

// NewStore selects a backing store based on whether a database URL is provided.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if databaseURL == "" {
		return NewInMemoryStore(), nil
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS layouts (
        id TEXT PRIMARY KEY,
        request JSONB NOT NULL DEFAULT '{}'::jsonb,
        description TEXT,
        image_url TEXT,
        text_provider TEXT,
        image_provider TEXT,
        text_attempts JSONB NOT NULL DEFAULT '[]'::jsonb,
        image_attempts JSONB NOT NULL DEFAULT '[]'::jsonb,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`)
	if err != nil {
		return fmt.Errorf("create layouts table: %w", err)
	}
	return nil
}

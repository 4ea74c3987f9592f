package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"homedesignai/internal/chain"
)

// PostgresStore persists layout history in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// CreateLayout stores the provided layout in PostgreSQL.
func (s *PostgresStore) CreateLayout(ctx context.Context, input Layout) (Layout, error) {
	if input.ID == "" {
		input.ID = uuid.NewString()
	}
	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now()
	}

	request, err := json.Marshal(input.Request)
	if err != nil {
		return Layout{}, fmt.Errorf("marshal request: %w", err)
	}
	textAttempts, err := json.Marshal(orEmptyAttempts(input.TextAttempts))
	if err != nil {
		return Layout{}, fmt.Errorf("marshal text attempts: %w", err)
	}
	imageAttempts, err := json.Marshal(orEmptyAttempts(input.ImageAttempts))
	if err != nil {
		return Layout{}, fmt.Errorf("marshal image attempts: %w", err)
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO layouts (id, request, description, image_url, text_provider, image_provider, text_attempts, image_attempts, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		input.ID, request, input.Description, input.ImageURL,
		input.TextProvider, input.ImageProvider, textAttempts, imageAttempts, input.CreatedAt); err != nil {
		return Layout{}, fmt.Errorf("insert layout: %w", err)
	}

	return input, nil
}

// ListLayouts returns the most recent layouts, newest first.
func (s *PostgresStore) ListLayouts(ctx context.Context) ([]Layout, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, request, description, image_url, text_provider, image_provider, text_attempts, image_attempts, created_at
         FROM layouts ORDER BY created_at DESC LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("query layouts: %w", err)
	}
	defer rows.Close()

	layouts := []Layout{}
	for rows.Next() {
		item, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, item)
	}

	return layouts, rows.Err()
}

// GetLayout returns a single layout by ID.
func (s *PostgresStore) GetLayout(ctx context.Context, id string) (Layout, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, request, description, image_url, text_provider, image_provider, text_attempts, image_attempts, created_at
         FROM layouts WHERE id = $1`, id)

	item, err := scanLayout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Layout{}, ErrNotFound
		}
		return Layout{}, err
	}
	return item, nil
}

// DeleteLayout removes a layout by ID.
func (s *PostgresStore) DeleteLayout(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM layouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases database resources.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayout(row rowScanner) (Layout, error) {
	var (
		item          Layout
		request       []byte
		textAttempts  []byte
		imageAttempts []byte
	)
	if err := row.Scan(&item.ID, &request, &item.Description, &item.ImageURL,
		&item.TextProvider, &item.ImageProvider, &textAttempts, &imageAttempts, &item.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Layout{}, err
		}
		return Layout{}, fmt.Errorf("scan layout: %w", err)
	}

	if err := json.Unmarshal(request, &item.Request); err != nil {
		return Layout{}, fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(textAttempts, &item.TextAttempts); err != nil {
		return Layout{}, fmt.Errorf("decode text attempts: %w", err)
	}
	if err := json.Unmarshal(imageAttempts, &item.ImageAttempts); err != nil {
		return Layout{}, fmt.Errorf("decode image attempts: %w", err)
	}
	return item, nil
}

func orEmptyAttempts(attempts []chain.Attempt) []chain.Attempt {
	if attempts == nil {
		return []chain.Attempt{}
	}
	return attempts
}

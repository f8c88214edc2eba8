package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/resume-studio/internal/types"
)

// PostgresStore persists session drafts in PostgreSQL for multi-process
// server deployments. Drafts are stored as JSONB keyed by session ID.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// schema creates the session_drafts table if it does not exist.
const schema = `
CREATE TABLE IF NOT EXISTS session_drafts (
    id UUID PRIMARY KEY,
    draft JSONB NOT NULL DEFAULT '{}'::jsonb,
    last_template TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// ConnectPostgres establishes a connection pool and ensures the schema.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure session schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Create registers a new empty session.
func (s *PostgresStore) Create(ctx context.Context) (string, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO session_drafts (id) VALUES ($1)`, id)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id.String(), nil
}

// LoadDraft returns the draft for a session.
func (s *PostgresStore) LoadDraft(ctx context.Context, sessionID string) (types.ResumeData, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT draft FROM session_drafts WHERE id = $1`, sessionID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return types.ResumeData{}, &ErrNotFound{SessionID: sessionID}
	}
	if err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to load draft: %w", err)
	}

	var draft types.ResumeData
	if err := json.Unmarshal(raw, &draft); err != nil {
		return types.ResumeData{}, fmt.Errorf("failed to decode stored draft: %w", err)
	}
	return draft, nil
}

// SaveDraft replaces the draft for a session.
func (s *PostgresStore) SaveDraft(ctx context.Context, sessionID string, draft types.ResumeData) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE session_drafts SET draft = $1, updated_at = NOW() WHERE id = $2`,
		raw, sessionID)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{SessionID: sessionID}
	}
	return nil
}

// LastTemplate returns the last-used template for a session.
func (s *PostgresStore) LastTemplate(ctx context.Context, sessionID string) (string, error) {
	var template string
	err := s.pool.QueryRow(ctx,
		`SELECT last_template FROM session_drafts WHERE id = $1`, sessionID).Scan(&template)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", &ErrNotFound{SessionID: sessionID}
	}
	if err != nil {
		return "", fmt.Errorf("failed to load last template: %w", err)
	}
	return template, nil
}

// SetLastTemplate records the last-used template for a session.
func (s *PostgresStore) SetLastTemplate(ctx context.Context, sessionID, template string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE session_drafts SET last_template = $1, updated_at = NOW() WHERE id = $2`,
		template, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set last template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{SessionID: sessionID}
	}
	return nil
}

// Clear resets the session to an empty draft and no last-used template.
func (s *PostgresStore) Clear(ctx context.Context, sessionID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE session_drafts SET draft = '{}'::jsonb, last_template = '', updated_at = NOW() WHERE id = $1`,
		sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ErrNotFound{SessionID: sessionID}
	}
	return nil
}

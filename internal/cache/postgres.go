package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS lingueasy_translations (
	hash            TEXT PRIMARY KEY,
	source_lang     TEXT NOT NULL,
	target_lang     TEXT NOT NULL,
	source_text     TEXT NOT NULL,
	translated_text TEXT NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const (
	getQuery = `SELECT translated_text FROM lingueasy_translations WHERE hash = $1`

	upsertQuery = `
INSERT INTO lingueasy_translations (hash, source_lang, target_lang, source_text, translated_text)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (hash) DO UPDATE SET translated_text = EXCLUDED.translated_text, updated_at = now()`

	allQuery = `
SELECT hash, source_lang, target_lang, source_text, translated_text
FROM lingueasy_translations`
)

// PGStore keeps the translation memory in PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// OpenPGStore connects to databaseURL and creates the table when missing.
func OpenPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect translation memory: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping translation memory: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Msg("Connected to translation memory")
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create translation memory table: %w", err)
	}

	return nil
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.pool.Close()
}

func (s *PGStore) Get(ctx context.Context, hash string) (string, error) {
	var translated string

	err := s.pool.QueryRow(ctx, getQuery, hash).Scan(&translated)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query translation %s: %w", hash, err)
	}

	return translated, nil
}

func (s *PGStore) Put(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx, upsertQuery, e.Hash, e.Source, e.Target, e.Text, e.Translated)
	if err != nil {
		return fmt.Errorf("upsert translation %s: %w", e.Hash, err)
	}

	return nil
}

func (s *PGStore) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx, allQuery)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[Entry])
	if err != nil {
		return nil, fmt.Errorf("scan translations: %w", err)
	}

	return entries, nil
}

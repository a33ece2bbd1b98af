package episodes

import (
	"context"
	"encoding/json"
	"fmt"

	"stream-search/pkg/db"
	"stream-search/pkg/domain"
)

// PostgresStore serves episodes from a Postgres (or Supabase-hosted
// Postgres) table. Any db.DBProvider works.
type PostgresStore struct {
	provider db.DBProvider
}

// NewPostgresStore creates a Postgres-backed episode store.
func NewPostgresStore(provider db.DBProvider) *PostgresStore {
	return &PostgresStore{provider: provider}
}

// EnsureSchema creates the episode table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const stmt = `
CREATE TABLE IF NOT EXISTS episode (
    date        TEXT PRIMARY KEY,
    srt         TEXT NOT NULL,
    metadata    JSONB,
    ingested_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := s.provider.DB().ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("ensure episode schema: %w", err)
	}
	return nil
}

// SaveEpisode upserts an episode row keyed by date.
func (s *PostgresStore) SaveEpisode(ctx context.Context, episode *domain.Episode) error {
	metadata, err := json.Marshal(episode.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata for %s: %w", episode.Date, err)
	}

	const stmt = `
INSERT INTO episode (date, srt, metadata)
VALUES ($1, $2, $3)
ON CONFLICT (date) DO UPDATE SET srt = EXCLUDED.srt, metadata = EXCLUDED.metadata`
	if _, err := s.provider.DB().ExecContext(ctx, stmt, episode.Date, episode.SRT, metadata); err != nil {
		return fmt.Errorf("save episode %s: %w", episode.Date, err)
	}
	return nil
}

// ListDates returns all stored episode dates in chronological order.
func (s *PostgresStore) ListDates(ctx context.Context) ([]string, error) {
	rows, err := s.provider.DB().QueryContext(ctx, `SELECT date FROM episode ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query episode dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan episode date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// Transcript loads the stored SRT content for an episode.
func (s *PostgresStore) Transcript(ctx context.Context, date string) (string, error) {
	var srt string
	err := s.provider.DB().QueryRowContext(ctx,
		`SELECT srt FROM episode WHERE date = $1`, date).Scan(&srt)
	if err != nil {
		return "", fmt.Errorf("load transcript for %s: %w", date, err)
	}
	return srt, nil
}

// Metadata loads the stored video metadata for an episode.
func (s *PostgresStore) Metadata(ctx context.Context, date string) (*domain.VideoMetadata, error) {
	var raw []byte
	err := s.provider.DB().QueryRowContext(ctx,
		`SELECT metadata FROM episode WHERE date = $1`, date).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load metadata for %s: %w", date, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("episode %s has no metadata", date)
	}

	var metadata domain.VideoMetadata
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", date, err)
	}
	return &metadata, nil
}

package episodes

import (
	"context"
	"fmt"

	"stream-search/pkg/db"
	"stream-search/pkg/domain"
)

// MongoStore serves episodes from the MongoDB corpus populated by the
// ingest tool.
type MongoStore struct {
	client *db.Client
}

// NewMongoStore creates a MongoDB-backed episode store.
func NewMongoStore(client *db.Client) *MongoStore {
	return &MongoStore{client: client}
}

// ListDates returns all stored episode dates.
func (s *MongoStore) ListDates(ctx context.Context) ([]string, error) {
	return s.client.ListEpisodeDates(ctx)
}

// Transcript loads the stored SRT content for an episode.
func (s *MongoStore) Transcript(ctx context.Context, date string) (string, error) {
	episode, err := s.client.GetEpisode(ctx, date)
	if err != nil {
		return "", err
	}
	if episode.SRT == "" {
		return "", fmt.Errorf("episode %s has no transcript", date)
	}
	return episode.SRT, nil
}

// Metadata loads the stored video metadata for an episode.
func (s *MongoStore) Metadata(ctx context.Context, date string) (*domain.VideoMetadata, error) {
	episode, err := s.client.GetEpisode(ctx, date)
	if err != nil {
		return nil, err
	}
	if episode.Metadata == nil {
		return nil, fmt.Errorf("episode %s has no metadata", date)
	}
	return episode.Metadata, nil
}

package episodes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"stream-search/pkg/domain"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DirStore serves episodes from a local assets directory laid out as
// <root>/YYYY-MM-DD/YYYY-MM-DD.srt and <root>/YYYY-MM-DD/YYYY-MM-DD.json.
type DirStore struct {
	root string
}

// NewDirStore creates a directory-backed episode store.
func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// ListDates scans the root for date-named episode directories.
func (s *DirStore) ListDates(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read assets directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() && datePattern.MatchString(entry.Name()) {
			dates = append(dates, entry.Name())
		}
	}

	sort.Strings(dates)
	return dates, nil
}

// Transcript reads the episode's SRT file.
func (s *DirStore) Transcript(ctx context.Context, date string) (string, error) {
	content, err := os.ReadFile(filepath.Join(s.root, date, date+".srt"))
	if err != nil {
		return "", fmt.Errorf("read SRT for %s: %w", date, err)
	}
	return string(content), nil
}

// Metadata reads and decodes the episode's JSON metadata file.
func (s *DirStore) Metadata(ctx context.Context, date string) (*domain.VideoMetadata, error) {
	content, err := os.ReadFile(filepath.Join(s.root, date, date+".json"))
	if err != nil {
		return nil, fmt.Errorf("read metadata for %s: %w", date, err)
	}

	var metadata domain.VideoMetadata
	if err := json.Unmarshal(content, &metadata); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", date, err)
	}
	return &metadata, nil
}

package episodes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"stream-search/pkg/domain"
	"stream-search/pkg/httpclient"
)

// RemoteStore serves episodes from a deployed assets host exposing
// <base>/assets/DATE/DATE.srt and <base>/assets/DATE/DATE.json.
//
// Remote asset hosts cannot be enumerated, so the candidate dates are
// supplied by the caller. Listing probes each candidate's transcript
// asset and drops dates the host does not have.
type RemoteStore struct {
	baseURL string
	dates   []string
	client  *httpclient.HTTPClient
}

// NewRemoteStore creates a remote episode store for the given base URL
// and candidate episode dates.
func NewRemoteStore(baseURL string, dates []string) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		dates:   dates,
		client:  httpclient.NewClient(httpclient.PlainClient),
	}
}

// ListDates probes each candidate date's transcript asset with a HEAD
// request and returns the dates the host actually serves.
func (s *RemoteStore) ListDates(ctx context.Context) ([]string, error) {
	available := make([]string, 0, len(s.dates))
	for _, date := range s.dates {
		url := fmt.Sprintf("%s/assets/%s/%s.srt", s.baseURL, date, date)
		resp, err := s.client.Head(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", url, err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			available = append(available, date)
		}
	}
	return available, nil
}

// Transcript fetches the episode's SRT asset.
func (s *RemoteStore) Transcript(ctx context.Context, date string) (string, error) {
	body, err := s.fetch(ctx, fmt.Sprintf("%s/assets/%s/%s.srt", s.baseURL, date, date))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Metadata fetches and decodes the episode's JSON asset.
func (s *RemoteStore) Metadata(ctx context.Context, date string) (*domain.VideoMetadata, error) {
	body, err := s.fetch(ctx, fmt.Sprintf("%s/assets/%s/%s.json", s.baseURL, date, date))
	if err != nil {
		return nil, err
	}

	var metadata domain.VideoMetadata
	if err := json.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", date, err)
	}
	return &metadata, nil
}

func (s *RemoteStore) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}
	return body, nil
}

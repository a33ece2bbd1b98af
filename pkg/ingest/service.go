package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"stream-search/pkg/domain"
	"stream-search/pkg/httpclient"
)

// EpisodeSaver persists ingested episodes. Both the Mongo client and the
// Postgres store satisfy this.
type EpisodeSaver interface {
	SaveEpisode(ctx context.Context, episode *domain.Episode) error
}

// Service ingests episodes discovered in a channel feed into a corpus
// store: metadata always, transcript when one can be located.
type Service struct {
	saver   EpisodeSaver
	parser  *FeedParser
	client  *httpclient.HTTPClient
	workers int

	// transcriptBase, when set, is tried first for transcripts:
	// <transcriptBase>/DATE/DATE.srt.
	transcriptBase string
}

// New creates an ingest service writing to the given saver.
func New(saver EpisodeSaver) *Service {
	return &Service{
		saver:   saver,
		parser:  NewFeedParser(),
		client:  httpclient.NewClient(httpclient.PlainClient),
		workers: 4,
	}
}

// SetWorkers sets the number of parallel workers used to process feed
// entries. If workers <= 0, it will be coerced to 1.
func (s *Service) SetWorkers(workers int) {
	if workers <= 0 {
		s.workers = 1
		return
	}
	s.workers = workers
}

// SetTranscriptBase configures the asset host transcripts are fetched
// from.
func (s *Service) SetTranscriptBase(base string) {
	s.transcriptBase = base
}

// FromFeed ingests every entry of the channel feed at feedURL. A
// failing entry is logged and skipped; the rest of the feed is still
// ingested.
func (s *Service) FromFeed(ctx context.Context, feedURL string) error {
	entries, err := s.parser.ParseFromURL(feedURL)
	if err != nil {
		return fmt.Errorf("parse feed: %w", err)
	}

	jobs := make(chan FeedEntry, len(entries))
	for _, entry := range entries {
		jobs <- entry
	}
	close(jobs)

	type result struct {
		date string
		err  error
	}
	resultsChan := make(chan result, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				resultsChan <- result{date: entry.Date, err: s.ingestEntry(ctx, entry)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var saved, failed int
	for res := range resultsChan {
		if res.err != nil {
			failed++
			log.Printf("Failed to ingest episode %s: %v", res.date, res.err)
			continue
		}
		saved++
	}

	log.Printf("Ingest complete: %d saved, %d failed (total: %d)", saved, failed, len(entries))

	if saved == 0 && failed > 0 {
		return fmt.Errorf("all %d feed entries failed to ingest", failed)
	}
	return nil
}

// ingestEntry builds and saves one episode from a feed entry.
func (s *Service) ingestEntry(ctx context.Context, entry FeedEntry) error {
	episode := &domain.Episode{
		Date:       entry.Date,
		Metadata:   entry.Metadata,
		IngestedAt: time.Now(),
	}

	if srt, err := s.fetchTranscript(ctx, entry); err != nil {
		log.Printf("No transcript for episode %s: %v", entry.Date, err)
	} else {
		episode.SRT = srt
	}

	if err := s.saver.SaveEpisode(ctx, episode); err != nil {
		return fmt.Errorf("save episode: %w", err)
	}
	return nil
}

// fetchTranscript tries the configured asset host first, then a
// subtitle link discovered on the episode page.
func (s *Service) fetchTranscript(ctx context.Context, entry FeedEntry) (string, error) {
	if s.transcriptBase != "" {
		url := fmt.Sprintf("%s/%s/%s.srt", s.transcriptBase, entry.Date, entry.Date)
		if srt, err := s.fetchText(ctx, url); err == nil {
			return srt, nil
		}
	}

	if entry.PageURL == "" {
		return "", fmt.Errorf("no transcript source for %s", entry.Date)
	}

	html, err := s.fetchText(ctx, entry.PageURL)
	if err != nil {
		return "", fmt.Errorf("fetch episode page: %w", err)
	}

	// Keep the page's readable text as the stored description while we
	// have it.
	if entry.Metadata != nil && entry.Metadata.Description == "" {
		if description, err := ExtractDescription(html); err == nil {
			entry.Metadata.Description = description
		}
	}

	subtitleURL, err := FindSubtitleURL(html)
	if err != nil {
		return "", err
	}

	return s.fetchText(ctx, subtitleURL)
}

func (s *Service) fetchText(ctx context.Context, url string) (string, error) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response from %s: %w", url, err)
	}
	return string(body), nil
}

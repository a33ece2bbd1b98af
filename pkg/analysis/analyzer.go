package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"stream-search/pkg/domain"
)

// EpisodeStore supplies raw transcript text and metadata per episode.
// Directory scans, remote asset fetches and database-backed stores all
// satisfy this; the engine does not care which one it is given.
type EpisodeStore interface {
	// ListDates returns the available episode dates (YYYY-MM-DD).
	ListDates(ctx context.Context) ([]string, error)

	// Transcript returns the raw SRT content for an episode date.
	Transcript(ctx context.Context, date string) (string, error)

	// Metadata returns the video metadata for an episode date.
	Metadata(ctx context.Context, date string) (*domain.VideoMetadata, error)
}

// ErrEmptyTerm is returned when the query term is empty or whitespace.
var ErrEmptyTerm = errors.New("search term is empty")

// Analyzer runs word analysis across an episode corpus.
type Analyzer struct {
	store EpisodeStore
	cfg   Config
}

// NewAnalyzer creates an analyzer over the given store.
func NewAnalyzer(store EpisodeStore, cfg Config) *Analyzer {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Analyzer{store: store, cfg: cfg}
}

// Analyze searches the whole corpus for term and aggregates the result
// into a single report. The term is trimmed and case-folded first;
// an empty term is rejected before any episode is touched.
//
// Episodes are fetched and analyzed in parallel, then merged by a single
// reader in chronological order so the global context cap fills
// deterministically. A failing episode is logged and skipped, never
// retried; exceeding the configured timeout aborts the run with an
// error.
func (a *Analyzer) Analyze(ctx context.Context, term string) (*domain.Report, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, ErrEmptyTerm
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	dates, err := a.store.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}

	results, err := a.analyzeAll(ctx, dates, term)
	if err != nil {
		return nil, err
	}

	return aggregate(a.cfg, term, results), nil
}

// analyzeAll fans episode dates out to a worker pool and collects the
// per-episode results.
func (a *Analyzer) analyzeAll(ctx context.Context, dates []string, term string) ([]*domain.EpisodeResult, error) {
	jobs := make(chan string, len(dates))
	for _, date := range dates {
		jobs <- date
	}
	close(jobs)

	resultsChan := make(chan *domain.EpisodeResult, len(dates))
	var wg sync.WaitGroup

	for i := 0; i < a.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for date := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, err := a.analyzeOne(ctx, date, term)
				if err != nil {
					log.Printf("Skipping episode %s: %v", date, err)
					continue
				}
				if result != nil {
					resultsChan <- result
				}
			}
		}()
	}

	wg.Wait()
	close(resultsChan)

	// A timed-out run yields an error, not a partial report.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis aborted: %w", err)
	}

	results := make([]*domain.EpisodeResult, 0, len(dates))
	for result := range resultsChan {
		results = append(results, result)
	}
	return results, nil
}

// analyzeOne retrieves one episode's transcript and metadata and runs
// the episode analyzer. Retrieval is the only I/O in the whole engine.
func (a *Analyzer) analyzeOne(ctx context.Context, date, term string) (*domain.EpisodeResult, error) {
	srtContent, err := a.store.Transcript(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	metadata, err := a.store.Metadata(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	return AnalyzeEpisode(a.cfg, date, srtContent, metadata, term), nil
}

// aggregate merges independent episode results into the final report.
// Results are merged in chronological order; once the global context cap
// is full, later episodes contribute counts but no further contexts.
func aggregate(cfg Config, term string, results []*domain.EpisodeResult) *domain.Report {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Date < results[j].Date
	})

	report := domain.NewReport(term)
	for _, result := range results {
		report.TotalCount += result.OccurrenceCount
		report.Episodes = append(report.Episodes, domain.EpisodeCount{
			Date:  result.Date,
			Count: result.OccurrenceCount,
		})

		for speaker, count := range result.SpeakerCounts {
			report.Speakers[speaker] += count
		}

		if remaining := cfg.MaxContexts - len(report.Contexts); remaining > 0 {
			contexts := result.Contexts
			if len(contexts) > remaining {
				contexts = contexts[:remaining]
			}
			report.Contexts = append(report.Contexts, contexts...)
		}
	}

	// When every episode's primary selection leaves room under the
	// global cap, refill from per-episode overflow in the same
	// chronological order. A single dense episode can then still fill
	// the whole report.
	for _, result := range results {
		remaining := cfg.MaxContexts - len(report.Contexts)
		if remaining <= 0 {
			break
		}
		extra := result.ExtraContexts
		if len(extra) > remaining {
			extra = extra[:remaining]
		}
		report.Contexts = append(report.Contexts, extra...)
	}

	return report
}

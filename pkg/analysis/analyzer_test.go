package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"stream-search/pkg/domain"
)

// memStore is an in-memory EpisodeStore for tests.
type memStore struct {
	episodes map[string]memEpisode
	failing  map[string]bool
}

type memEpisode struct {
	srt      string
	metadata *domain.VideoMetadata
}

func newMemStore() *memStore {
	return &memStore{
		episodes: make(map[string]memEpisode),
		failing:  make(map[string]bool),
	}
}

func (s *memStore) add(date, srtContent string) {
	s.episodes[date] = memEpisode{
		srt: srtContent,
		metadata: &domain.VideoMetadata{
			Thumbnails: &domain.Thumbnails{
				Medium: &domain.Thumbnail{URL: "https://i.ytimg.com/vi/vid" + date + "/mqdefault.jpg"},
			},
		},
	}
}

func (s *memStore) ListDates(ctx context.Context) ([]string, error) {
	dates := make([]string, 0, len(s.episodes))
	for date := range s.episodes {
		dates = append(dates, date)
	}
	for date := range s.failing {
		dates = append(dates, date)
	}
	return dates, nil
}

func (s *memStore) Transcript(ctx context.Context, date string) (string, error) {
	if s.failing[date] {
		return "", errors.New("transcript unavailable")
	}
	return s.episodes[date].srt, nil
}

func (s *memStore) Metadata(ctx context.Context, date string) (*domain.VideoMetadata, error) {
	if s.failing[date] {
		return nil, errors.New("metadata unavailable")
	}
	return s.episodes[date].metadata, nil
}

func srtBlock(n int, startSec float64, text string) string {
	h := int(startSec) / 3600
	m := (int(startSec) % 3600) / 60
	sec := int(startSec) % 60
	ms := int((startSec - float64(int(startSec))) * 1000)
	return fmt.Sprintf("%d\n%02d:%02d:%02d,%03d --> %02d:%02d:%02d,%03d\n%s\n\n",
		n, h, m, sec, ms, h, m, sec+2, ms, text)
}

// Scenario: a single cue containing the term once.
func TestAnalyze_SingleOccurrence(t *testing.T) {
	store := newMemStore()
	store.add("2024-07-24", srtBlock(1, 1, "[Максим] Це тестовий потік даних"))

	analyzer := NewAnalyzer(store, testConfig())
	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if report.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", report.TotalCount)
	}
	if report.Speakers["Максим"] != 1 || len(report.Speakers) != 1 {
		t.Errorf("Speakers = %v, want {Максим: 1}", report.Speakers)
	}
	if len(report.Episodes) != 1 || report.Episodes[0].Count != 1 {
		t.Errorf("Episodes = %v, want one entry with count 1", report.Episodes)
	}
}

// The term is trimmed and case-folded before analysis.
func TestAnalyze_FoldsTerm(t *testing.T) {
	store := newMemStore()
	store.add("2024-07-24", srtBlock(1, 1, "[Максим] Це тестовий потік даних"))

	analyzer := NewAnalyzer(store, testConfig())
	report, err := analyzer.Analyze(context.Background(), "  ПОТІК  ")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if report.Word != "потік" {
		t.Errorf("Word = %q, want %q", report.Word, "потік")
	}
	if report.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", report.TotalCount)
	}
}

func TestAnalyze_EmptyTerm(t *testing.T) {
	analyzer := NewAnalyzer(newMemStore(), testConfig())

	for _, term := range []string{"", "   ", "\t\n"} {
		if _, err := analyzer.Analyze(context.Background(), term); !errors.Is(err, ErrEmptyTerm) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyTerm", term, err)
		}
	}
}

// 25 distinct matching cues: total count is unaffected by the 20-context
// global cap.
func TestAnalyze_GlobalContextCap(t *testing.T) {
	store := newMemStore()
	var b strings.Builder
	for i := 0; i < 25; i++ {
		// Spread cues a minute apart with distinct filler so neither the
		// time-signature nor the similarity gate collapses them.
		text := fmt.Sprintf("[Максим] потік номер %d і зовсім окрема розповідь про подію %d-%d", i, i*7, i*13)
		b.WriteString(srtBlock(i+1, float64(i*60+1), text))
	}
	half := strings.Split(b.String(), "\n\n")
	store.add("2024-07-17", strings.Join(half[:13], "\n\n")+"\n\n")
	store.add("2024-07-24", strings.Join(half[13:], "\n\n"))

	cfg := testConfig()
	cfg.ConversationalContext = false
	analyzer := NewAnalyzer(store, cfg)

	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if report.TotalCount != 25 {
		t.Errorf("TotalCount = %d, want 25", report.TotalCount)
	}
	if len(report.Contexts) != 20 {
		t.Errorf("len(Contexts) = %d, want exactly 20", len(report.Contexts))
	}
	if report.Speakers["Максим"] != 25 {
		t.Errorf("Speakers = %v, want {Максим: 25}", report.Speakers)
	}
}

// A single dense episode fills the whole report: the per-episode
// selection feeds 15 contexts and overflow tops the report up to 20.
func TestAnalyze_SingleEpisodeFillsGlobalCap(t *testing.T) {
	store := newMemStore()
	var b strings.Builder
	for i := 0; i < 25; i++ {
		text := fmt.Sprintf("[Максим] потік номер %d і зовсім окрема розповідь про подію %d-%d", i, i*7, i*13)
		b.WriteString(srtBlock(i+1, float64(i*60+1), text))
	}
	store.add("2024-07-24", b.String())

	cfg := testConfig()
	cfg.ConversationalContext = false
	analyzer := NewAnalyzer(store, cfg)

	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if report.TotalCount != 25 {
		t.Errorf("TotalCount = %d, want 25", report.TotalCount)
	}
	if len(report.Contexts) != 20 {
		t.Errorf("len(Contexts) = %d, want exactly 20", len(report.Contexts))
	}
	for _, c := range report.Contexts {
		if c.Episode != "2024-07-24" {
			t.Errorf("context attributed to %s, want 2024-07-24", c.Episode)
		}
	}
}

// An episode with zero matches is absent from the episode list but does
// not desynchronize the totals.
func TestAnalyze_ZeroMatchEpisodeDropped(t *testing.T) {
	store := newMemStore()
	store.add("2024-07-17", srtBlock(1, 1, "[Максим] сьогодні говоримо про книжки і переклади"))
	store.add("2024-07-24", srtBlock(1, 1, "[Максим] це тестовий потік даних"))

	analyzer := NewAnalyzer(store, testConfig())
	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if len(report.Episodes) != 1 || report.Episodes[0].Date != "2024-07-24" {
		t.Errorf("Episodes = %v, want only 2024-07-24", report.Episodes)
	}
	if report.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", report.TotalCount)
	}
}

// Episodes are sorted chronologically regardless of processing order.
func TestAnalyze_EpisodesSorted(t *testing.T) {
	store := newMemStore()
	for _, date := range []string{"2024-07-24", "2024-05-08", "2024-06-12"} {
		store.add(date, srtBlock(1, 1, "[Максим] це тестовий потік даних без зупинки"))
	}

	analyzer := NewAnalyzer(store, testConfig())
	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	want := []string{"2024-05-08", "2024-06-12", "2024-07-24"}
	if len(report.Episodes) != len(want) {
		t.Fatalf("Episodes = %v, want 3 entries", report.Episodes)
	}
	for i, date := range want {
		if report.Episodes[i].Date != date {
			t.Errorf("Episodes[%d].Date = %q, want %q", i, report.Episodes[i].Date, date)
		}
	}
}

// A failing episode is skipped; the rest of the corpus still analyzes.
func TestAnalyze_FailingEpisodeSkipped(t *testing.T) {
	store := newMemStore()
	store.add("2024-07-24", srtBlock(1, 1, "[Максим] це тестовий потік даних"))
	store.failing["2024-07-17"] = true

	analyzer := NewAnalyzer(store, testConfig())
	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if report.TotalCount != 1 || len(report.Episodes) != 1 {
		t.Errorf("report = %+v, want the healthy episode analyzed", report)
	}
}

// Speakers outside the allow-list never contribute counts or contexts.
func TestAnalyze_SpeakerAllowList(t *testing.T) {
	store := newMemStore()
	store.add("2024-07-24",
		srtBlock(1, 1, "[Максим] це тестовий потік даних")+
			srtBlock(2, 10, "[Гість] мій потік значно кращий за ваш"))

	analyzer := NewAnalyzer(store, testConfig())
	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if report.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1 (guest excluded)", report.TotalCount)
	}
	if _, ok := report.Speakers["Гість"]; ok {
		t.Errorf("Speakers = %v, guest must not appear", report.Speakers)
	}
	for _, c := range report.Contexts {
		if c.Speaker == "Гість" {
			t.Errorf("context attributed to excluded speaker: %+v", c)
		}
	}
}

// Contexts carry a timestamped watch link derived from the thumbnail.
func TestAnalyze_ContextLinks(t *testing.T) {
	store := newMemStore()
	store.add("2024-07-24", srtBlock(1, 61, "[Максим] це тестовий потік даних і ще трохи слів"))

	analyzer := NewAnalyzer(store, testConfig())
	report, err := analyzer.Analyze(context.Background(), "потік")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if len(report.Contexts) != 1 {
		t.Fatalf("Contexts = %v, want one snippet", report.Contexts)
	}

	c := report.Contexts[0]
	if c.Episode != "2024-07-24" || c.Speaker != "Максим" {
		t.Errorf("context attribution = %s/%s", c.Episode, c.Speaker)
	}
	if c.YouTubeLink == nil || !strings.Contains(*c.YouTubeLink, "&t=61") {
		t.Errorf("YouTubeLink = %v, want timestamped link", c.YouTubeLink)
	}
}

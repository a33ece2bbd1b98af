package domain

// EpisodeCount is one episode's tally in the final report.
type EpisodeCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MatchContext is one human-readable evidence snippet for an occurrence.
type MatchContext struct {
	Episode      string  `json:"episode"`
	Time         float64 `json:"time"`
	Speaker      string  `json:"speaker"`
	Text         string  `json:"text"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	// YouTubeLink is nil when the episode metadata carries no video ID.
	YouTubeLink *string `json:"youtubeLink"`
}

// EpisodeResult is the analysis outcome for a single episode.
// Episodes with zero occurrences produce no result at all.
type EpisodeResult struct {
	Date            string
	OccurrenceCount int
	SpeakerCounts   map[string]int
	Contexts        []MatchContext

	// ExtraContexts holds deduplicated snippets beyond the per-episode
	// selection. The aggregator draws on them when the report cap still
	// has room after every episode's primary contexts are merged.
	ExtraContexts []MatchContext
}

// Report is the aggregate word analysis across the whole corpus.
// This is the exact shape returned to API callers.
type Report struct {
	Word       string         `json:"word"`
	TotalCount int            `json:"totalCount"`
	Episodes   []EpisodeCount `json:"episodes"`
	Speakers   map[string]int `json:"speakers"`
	Contexts   []MatchContext `json:"contexts"`
	Error      string         `json:"error,omitempty"`
}

// NewReport returns an empty report for the given term with all
// collections initialized, so it always marshals to the full shape.
func NewReport(word string) *Report {
	return &Report{
		Word:     word,
		Episodes: []EpisodeCount{},
		Speakers: map[string]int{},
		Contexts: []MatchContext{},
	}
}

// ErrorReport returns a degraded zero-count report carrying an error
// message. Callers receive this instead of a raised error.
func ErrorReport(word, msg string) *Report {
	r := NewReport(word)
	r.Error = msg
	return r
}

package analysis

import "time"

// Config holds the tunable thresholds of the analysis engine. All
// per-corpus knobs live here so the engine stays a pure function of
// (corpus, term, config).
type Config struct {
	// ValidSpeakers is the allow-list of speaker labels that contribute
	// to the analysis. Cues from other speakers are ignored.
	ValidSpeakers []string

	// CountOverlaps makes counting overlap-permissive (the scan resumes
	// one character after each match start). When false, the scan
	// resumes after the full match.
	CountOverlaps bool

	// MinContextLength is the snippet length (in runes) below which the
	// context builder extends into neighboring cues.
	MinContextLength int

	// MinContextWords is the minimum number of words a snippet must
	// retain after the search term is removed.
	MinContextWords int

	// MaxContextSubtitles bounds how many same-speaker neighbor cues may
	// be folded into one snippet.
	MaxContextSubtitles int

	// MaxContextTimeGap is the dialogue window in seconds. Same-speaker
	// extension uses 1.5x this window.
	MaxContextTimeGap float64

	// ConversationalContext enables weaving nearby other-speaker turns
	// into the snippet.
	ConversationalContext bool

	// MaxConversationalExchanges bounds other-speaker turns gathered on
	// each side of the match.
	MaxConversationalExchanges int

	// MaxEpisodeContexts caps snippets kept per episode after the
	// diversity pass.
	MaxEpisodeContexts int

	// MaxContexts caps snippets in the final aggregated report.
	MaxContexts int

	// Workers is the number of episodes analyzed in parallel.
	Workers int

	// Timeout bounds the whole corpus analysis. Zero means no limit.
	Timeout time.Duration
}

// DefaultConfig returns the thresholds used by the production stream
// corpus.
func DefaultConfig() Config {
	return Config{
		ValidSpeakers:              []string{"Максим", "Олександра", "Аліна"},
		CountOverlaps:              true,
		MinContextLength:           30,
		MinContextWords:            5,
		MaxContextSubtitles:        4,
		MaxContextTimeGap:          10,
		ConversationalContext:      true,
		MaxConversationalExchanges: 2,
		MaxEpisodeContexts:         15,
		MaxContexts:                20,
		Workers:                    4,
		Timeout:                    30 * time.Second,
	}
}

// isValidSpeaker reports whether the speaker is on the allow-list.
func (c *Config) isValidSpeaker(speaker string) bool {
	for _, s := range c.ValidSpeakers {
		if s == speaker {
			return true
		}
	}
	return false
}

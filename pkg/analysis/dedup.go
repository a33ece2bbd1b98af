package analysis

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"stream-search/pkg/domain"
)

// deduplicator suppresses near-duplicate snippets within one episode.
// Naive context extension produces many near-identical snippets for
// closely spaced occurrences, so two gates run during collection and a
// diversity pass runs at the end.
type deduplicator struct {
	cfg *Config

	// seenSeconds tracks rounded match timestamps that already produced
	// a snippet.
	seenSeconds map[int]bool
	kept        []domain.MatchContext
}

func newDeduplicator(cfg *Config) *deduplicator {
	return &deduplicator{
		cfg:         cfg,
		seenSeconds: make(map[int]bool),
	}
}

// admit runs the time-signature and similarity gates on a candidate and
// keeps it when both pass.
func (d *deduplicator) admit(ctx domain.MatchContext) bool {
	second := int(math.Round(ctx.Time))
	if d.seenSeconds[second] {
		return false
	}

	if tooSimilar(ctx.Text, d.kept) {
		return false
	}

	d.seenSeconds[second] = true
	d.kept = append(d.kept, ctx)
	return true
}

// finalize re-ranks the kept snippets by timestamp, keeps the first
// snippet per distinct speaker, then fills remaining slots with further
// snippets that still clear the similarity gate against the growing
// kept set. Snippets cut by the per-episode cap come back as overflow,
// still in time order, so aggregation can draw on them when the report
// has room left.
func (d *deduplicator) finalize() (selected, overflow []domain.MatchContext) {
	candidates := make([]domain.MatchContext, len(d.kept))
	copy(candidates, d.kept)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Time < candidates[j].Time
	})

	final := make([]domain.MatchContext, 0, len(candidates))
	seenSpeaker := make(map[string]bool)

	// Diversity first: one snippet per speaker in time order.
	for _, c := range candidates {
		if !seenSpeaker[c.Speaker] {
			seenSpeaker[c.Speaker] = true
			final = append(final, c)
		}
	}

	// Then fill up to the per-episode cap with what remains.
	for _, c := range candidates {
		if len(final) >= d.cfg.MaxEpisodeContexts {
			break
		}
		if containsContext(final, c) {
			continue
		}
		if tooSimilar(c.Text, final) {
			continue
		}
		final = append(final, c)
	}

	if len(final) > d.cfg.MaxEpisodeContexts {
		final = final[:d.cfg.MaxEpisodeContexts]
	}

	for _, c := range candidates {
		if !containsContext(final, c) {
			overflow = append(overflow, c)
		}
	}
	return final, overflow
}

func containsContext(list []domain.MatchContext, c domain.MatchContext) bool {
	for _, k := range list {
		if k.Time == c.Time && k.Speaker == c.Speaker && k.Text == c.Text {
			return true
		}
	}
	return false
}

// tooSimilar reports whether the candidate text exceeds the
// length-adjusted similarity threshold against any accepted snippet.
func tooSimilar(text string, accepted []domain.MatchContext) bool {
	threshold := similarityThreshold(text)
	for _, k := range accepted {
		if jaccardSimilarity(text, k.Text) > threshold {
			return true
		}
	}
	return false
}

// similarityThreshold adjusts the rejection bar by snippet length:
// min(0.8, 20/len + 0.6). Token overlap in short snippets is more likely
// to be coincidental, so they need near-total overlap to be rejected.
func similarityThreshold(text string) float64 {
	length := utf8.RuneCountInString(text)
	if length == 0 {
		return 0
	}
	return math.Min(0.8, 20/float64(length)+0.6)
}

// jaccardSimilarity is the ratio of shared unique whitespace tokens to
// the union of unique tokens across both texts.
func jaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for token := range setA {
		if setB[token] {
			shared++
		}
	}

	union := len(setA) + len(setB) - shared
	return float64(shared) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = true
	}
	return set
}

package analysis

import (
	"stream-search/pkg/domain"
	"stream-search/pkg/srt"
)

// AnalyzeEpisode walks one episode's subtitles in cue order and tallies
// occurrences of term. It returns nil when the episode contains no
// occurrences; such episodes are excluded from the report entirely.
//
// Cue processing is intentionally sequential: the context builder looks
// up neighbors by index.
func AnalyzeEpisode(cfg Config, date, srtContent string, metadata *domain.VideoMetadata, term string) *domain.EpisodeResult {
	subtitles := srt.Parse(srtContent)
	if len(subtitles) == 0 {
		return nil
	}

	thumbnailURL := metadata.ThumbnailURL()
	videoID := ExtractVideoID(thumbnailURL)

	builder := &contextBuilder{cfg: &cfg, subtitles: subtitles}
	dedup := newDeduplicator(&cfg)

	result := &domain.EpisodeResult{
		Date:          date,
		SpeakerCounts: make(map[string]int),
	}

	for i, subtitle := range subtitles {
		utterance := srt.ExtractUtterance(subtitle.Text)
		if utterance == nil {
			continue
		}
		if !cfg.isValidSpeaker(utterance.Speaker) {
			continue
		}

		occurrences := CountOccurrences(utterance.Speech, term, cfg.CountOverlaps)
		if occurrences == 0 {
			continue
		}

		result.OccurrenceCount += occurrences
		result.SpeakerCounts[utterance.Speaker] += occurrences

		text := utterance.Speech
		if len([]rune(text)) < cfg.MinContextLength || cfg.ConversationalContext {
			text = builder.build(i, utterance.Speaker)
		} else {
			text = sanitizeContext(text)
		}

		if !builder.isValidContext(text, term) {
			continue
		}

		dedup.admit(domain.MatchContext{
			Episode:      date,
			Time:         subtitle.Start,
			Speaker:      utterance.Speaker,
			Text:         text,
			ThumbnailURL: thumbnailURL,
			YouTubeLink:  watchLink(videoID, subtitle.Start),
		})
	}

	if result.OccurrenceCount == 0 {
		return nil
	}

	result.Contexts, result.ExtraContexts = dedup.finalize()
	return result
}

package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"stream-search/pkg/domain"
	"stream-search/pkg/srt"
)

// contextBuilder assembles readable snippets around matched cues. It
// needs the whole episode's subtitle list because extension walks
// neighbors by index.
type contextBuilder struct {
	cfg       *Config
	subtitles []domain.Subtitle
}

var (
	videoIDPattern    = regexp.MustCompile(`/vi/([^/]+)/`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	spaceBeforePunct  = regexp.MustCompile(`\s+([.,!?])`)
)

// build returns the enriched snippet for the cue at index i, or "" when
// no utterance can be extracted.
func (b *contextBuilder) build(i int, speaker string) string {
	text := b.extend(i, speaker)

	if b.cfg.ConversationalContext {
		if dialogue := b.conversational(i, speaker); dialogue != "" {
			text = combineContexts(text, dialogue)
		}
	}

	return text
}

// extend grows the matched cue's speech with neighboring cues from the
// same speaker. The window is half as generous again as the dialogue
// window: same-speaker continuations tend to stretch further.
func (b *contextBuilder) extend(i int, speaker string) string {
	current := srt.ExtractUtterance(b.subtitles[i].Text)
	context := b.subtitles[i].Text
	if current != nil {
		context = current.Speech
	}

	gap := b.cfg.MaxContextTimeGap * 1.5
	added := 0

	for fwd := i + 1; fwd < len(b.subtitles) && added < b.cfg.MaxContextSubtitles; fwd++ {
		if b.subtitles[fwd].Start > b.subtitles[i].Start+gap {
			break
		}
		if u := srt.ExtractUtterance(b.subtitles[fwd].Text); u != nil && u.Speaker == speaker {
			context += " " + u.Speech
			added++
		}
	}

	for back := i - 1; back >= 0 && added < b.cfg.MaxContextSubtitles; back-- {
		if b.subtitles[i].Start-b.subtitles[back].End > gap {
			break
		}
		if u := srt.ExtractUtterance(b.subtitles[back].Text); u != nil && u.Speaker == speaker {
			context = u.Speech + " " + context
			added++
		}
	}

	return sanitizeContext(context)
}

// conversational gathers nearby turns from other valid speakers as
// labeled dialogue lines, up to MaxConversationalExchanges per direction.
func (b *contextBuilder) conversational(i int, speaker string) string {
	gap := b.cfg.MaxContextTimeGap
	var dialogue string

	added := 0
	for back := i - 1; back >= 0 && added < b.cfg.MaxConversationalExchanges; back-- {
		if b.subtitles[i].Start-b.subtitles[back].End > gap {
			break
		}
		u := srt.ExtractUtterance(b.subtitles[back].Text)
		if u != nil && u.Speaker != speaker && b.cfg.isValidSpeaker(u.Speaker) {
			dialogue = fmt.Sprintf("[%s]: %s ", u.Speaker, u.Speech) + dialogue
			added++
		}
	}

	added = 0
	for fwd := i + 1; fwd < len(b.subtitles) && added < b.cfg.MaxConversationalExchanges; fwd++ {
		if b.subtitles[fwd].Start > b.subtitles[i].Start+gap {
			break
		}
		u := srt.ExtractUtterance(b.subtitles[fwd].Text)
		if u != nil && u.Speaker != speaker && b.cfg.isValidSpeaker(u.Speaker) {
			if dialogue != "" && !strings.HasSuffix(dialogue, " ") {
				dialogue += " "
			}
			dialogue += fmt.Sprintf("[%s]: %s", u.Speaker, u.Speech)
			added++
		}
	}

	return strings.TrimSpace(dialogue)
}

// combineContexts attaches dialogue context to the main snippet, inline
// when short and as a labeled block when long.
func combineContexts(main, dialogue string) string {
	if dialogue == "" {
		return main
	}
	if utf8.RuneCountInString(dialogue) < 100 {
		return fmt.Sprintf("%s (Context: %s)", main, dialogue)
	}
	return fmt.Sprintf("%s\n\nConversational context:\n%s", main, dialogue)
}

// sanitizeContext normalizes a snippet for display: collapsed
// whitespace, capitalized sentence starts, no space before punctuation.
func sanitizeContext(text string) string {
	if text == "" {
		return ""
	}

	sanitized := strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	sanitized = spaceBeforePunct.ReplaceAllString(sanitized, "$1")

	// Capitalize the first letter of each sentence.
	runes := []rune(sanitized)
	atSentenceStart := true
	for i := 0; i < len(runes); i++ {
		switch {
		case atSentenceStart && unicode.IsLetter(runes[i]):
			runes[i] = unicode.ToUpper(runes[i])
			atSentenceStart = false
		case runes[i] == '.' || runes[i] == '!' || runes[i] == '?':
			atSentenceStart = true
		case !unicode.IsSpace(runes[i]):
			atSentenceStart = false
		}
	}

	return string(runes)
}

// isValidContext rejects snippets that are just the search term or a
// near-empty fragment: at least 10 characters overall, and at least
// MinContextWords words once every occurrence of the term is removed.
func (b *contextBuilder) isValidContext(text, term string) bool {
	if text == "" || utf8.RuneCountInString(text) < 10 {
		return false
	}

	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
	if err != nil {
		return false
	}
	remaining := strings.TrimSpace(pattern.ReplaceAllString(strings.ToLower(text), ""))

	return len(strings.Fields(remaining)) >= b.cfg.MinContextWords
}

// ExtractVideoID recovers the video identifier from a thumbnail URL of
// the form ".../vi/<id>/...". It returns "" when the URL carries no
// identifier; callers must then omit the deep link rather than fabricate
// one.
func ExtractVideoID(thumbnailURL string) string {
	match := videoIDPattern.FindStringSubmatch(thumbnailURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// watchLink builds a timestamped watch URL, or nil without a video ID.
func watchLink(videoID string, start float64) *string {
	if videoID == "" {
		return nil
	}
	link := fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%d", videoID, int(start))
	return &link
}

package srt

import (
	"regexp"
	"strings"

	"stream-search/pkg/domain"
)

// speakerPattern matches the "[Speaker] spoken text" cue convention.
var speakerPattern = regexp.MustCompile(`\[([^\]]+)\](.*)`)

// ExtractUtterance splits a cue's text into a speaker label and the
// spoken content. It returns nil for cues that carry no speaker tag
// (sound effects, narration, song lyrics); those cues are simply not
// attributable and are excluded from analysis.
func ExtractUtterance(text string) *domain.Utterance {
	match := speakerPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	return &domain.Utterance{
		Speaker: strings.TrimSpace(match[1]),
		Speech:  strings.TrimSpace(match[2]),
	}
}

package srt

import (
	"regexp"
	"strconv"
	"strings"

	"stream-search/pkg/domain"
)

// timingPattern matches an SRT timing line: "HH:MM:SS,mmm --> HH:MM:SS,mmm".
var timingPattern = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3}) --> (\d{2}):(\d{2}):(\d{2}),(\d{3})`)

// blockSeparator splits SRT content into subtitle blocks (blank line,
// tolerating \r\n line endings).
var blockSeparator = regexp.MustCompile(`\r?\n\r?\n`)

var lineSeparator = regexp.MustCompile(`\r?\n`)

// Parse converts raw SRT content into an ordered list of subtitles.
//
// Each block is expected to be at least three lines: a sequence number, a
// timing line, and one or more text lines. Blocks with fewer lines or an
// unparseable timing line are skipped rather than treated as fatal - real
// transcripts routinely contain stray fragments.
func Parse(content string) []domain.Subtitle {
	blocks := blockSeparator.Split(strings.TrimSpace(content), -1)
	subtitles := make([]domain.Subtitle, 0, len(blocks))

	for _, block := range blocks {
		lines := lineSeparator.Split(block, -1)
		if len(lines) < 3 {
			continue
		}

		timing := timingPattern.FindStringSubmatch(lines[1])
		if timing == nil {
			continue
		}

		start := timeInSeconds(timing[1], timing[2], timing[3], timing[4])
		end := timeInSeconds(timing[5], timing[6], timing[7], timing[8])

		// Remaining lines are the cue text, preserved verbatim.
		text := strings.Join(lines[2:], "\n")

		subtitles = append(subtitles, domain.Subtitle{
			Start: start,
			End:   end,
			Text:  text,
		})
	}

	return subtitles
}

// timeInSeconds converts matched timestamp components to seconds.
// The components are guaranteed numeric by the timing pattern.
func timeInSeconds(hours, minutes, seconds, millis string) float64 {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000
}

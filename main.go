package main

import (
	"fmt"
	"log"
	"os"

	"stream-search/pkg/srt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: stream-search <episode.srt>")
	}

	content, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read SRT file: %v", err)
	}

	subtitles := srt.Parse(string(content))

	// Print first 10 cues
	maxCues := 10
	if len(subtitles) < maxCues {
		maxCues = len(subtitles)
	}

	fmt.Printf("Parsed %d cues. Showing first %d:\n\n", len(subtitles), maxCues)

	for i := 0; i < maxCues; i++ {
		sub := subtitles[i]
		fmt.Printf("Cue %d:\n", i+1)
		fmt.Printf("  Time: %.3f --> %.3f\n", sub.Start, sub.End)
		if u := srt.ExtractUtterance(sub.Text); u != nil {
			fmt.Printf("  Speaker: %s\n", u.Speaker)
			fmt.Printf("  Speech: %s\n", u.Speech)
		} else {
			fmt.Printf("  Text: %s\n", sub.Text)
		}
		fmt.Println()
	}
}

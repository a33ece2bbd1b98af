package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"stream-search/pkg/analysis"
	"stream-search/pkg/episodes"
)

func main() {
	var (
		assetsDir = flag.String("assets", "assets", "Episode assets directory (YYYY-MM-DD subdirectories)")
		word      = flag.String("word", "", "Word to search for")
		speakers  = flag.String("speakers", "Максим,Олександра,Аліна", "Comma-separated valid speaker allow-list")
		workers   = flag.Int("workers", 4, "Episodes analyzed in parallel")
		timeout   = flag.Duration("timeout", 30*time.Second, "Overall analysis timeout")
		overlaps  = flag.Bool("overlaps", true, "Count overlapping occurrences")
	)
	flag.Parse()

	cfg := analysis.DefaultConfig()
	cfg.ValidSpeakers = strings.Split(*speakers, ",")
	cfg.Workers = *workers
	cfg.Timeout = *timeout
	cfg.CountOverlaps = *overlaps

	analyzer := analysis.NewAnalyzer(episodes.NewDirStore(*assetsDir), cfg)

	start := time.Now()
	report, err := analyzer.Analyze(context.Background(), *word)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	log.Printf("Analyzed %q in %s: %d occurrences across %d episodes",
		report.Word, time.Since(start), report.TotalCount, len(report.Episodes))

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
}

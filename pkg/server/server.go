// Package server exposes the word analysis engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"stream-search/pkg/analysis"
	"stream-search/pkg/cache"
	"stream-search/pkg/domain"
)

// Server handles word analysis requests. Failures never raise past this
// boundary: callers always receive a report-shaped JSON value, degraded
// with an error string when something went wrong.
type Server struct {
	analyzer *analysis.Analyzer
	cache    *cache.Service
}

// New creates a server over the given analyzer, fronted by a result
// cache with the given TTL.
func New(analyzer *analysis.Analyzer, cacheTTL time.Duration) *Server {
	s := &Server{analyzer: analyzer}
	s.cache = cache.New(func(ctx context.Context, term string) (*domain.Report, error) {
		return analyzer.Analyze(ctx, term)
	}, cacheTTL)
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/word-analysis", s.handleWordAnalysis)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// handleWordAnalysis serves GET /api/word-analysis?word=<term>.
func (s *Server) handleWordAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	word := strings.TrimSpace(r.URL.Query().Get("word"))
	if word == "" {
		writeReport(w, http.StatusBadRequest,
			domain.ErrorReport("", "word parameter is required"))
		return
	}

	term := strings.ToLower(word)
	report, err := s.cache.Get(r.Context(), term)
	if err != nil {
		log.Printf("Word analysis for %q failed: %v", term, err)
		writeReport(w, http.StatusOK, domain.ErrorReport(term, err.Error()))
		return
	}

	log.Printf("Word analysis for %q: %d occurrences across %d episodes",
		term, report.TotalCount, len(report.Episodes))
	writeReport(w, http.StatusOK, report)
}

func writeReport(w http.ResponseWriter, status int, report *domain.Report) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		log.Printf("Failed to encode report: %v", err)
	}
}

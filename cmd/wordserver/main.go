package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"stream-search/pkg/analysis"
	"stream-search/pkg/db"
	"stream-search/pkg/episodes"
	"stream-search/pkg/server"
)

func main() {
	var (
		addr     = flag.String("addr", ":8080", "HTTP listen address")
		cacheTTL = flag.Duration("cache-ttl", time.Hour, "TTL for cached analysis results")

		assetsDir = flag.String("assets", "", "Local episode assets directory (YYYY-MM-DD subdirectories)")
		mongoURI  = flag.String("mongo-uri", "", "MongoDB connection string (used when -assets is not set)")
		dbName    = flag.String("db", "streamsearch", "MongoDB database name")
		coll      = flag.String("collection", "episodes", "MongoDB collection holding episodes")

		remoteBase  = flag.String("remote-base", "", "Remote assets host serving <base>/assets/DATE/DATE.{srt,json}")
		remoteDates = flag.String("remote-dates", "", "Comma-separated candidate episode dates for -remote-base")

		postgresDSN = flag.String("postgres-dsn", "", "Postgres DSN holding the episode table")
		supabaseURL = flag.String("supabase-url", "", "Supabase project URL")
		supabaseKey = flag.String("supabase-key", "", "Supabase API key")
		supabasePwd = flag.String("supabase-password", "", "Supabase database password")

		speakers = flag.String("speakers", "Максим,Олександра,Аліна", "Comma-separated valid speaker allow-list")
		workers  = flag.Int("workers", 4, "Episodes analyzed in parallel")
		timeout  = flag.Duration("timeout", 30*time.Second, "Overall analysis timeout")
	)
	flag.Parse()

	cfg := analysis.DefaultConfig()
	cfg.ValidSpeakers = strings.Split(*speakers, ",")
	cfg.Workers = *workers
	cfg.Timeout = *timeout

	ctx := context.Background()

	var store analysis.EpisodeStore
	switch {
	case *assetsDir != "":
		store = episodes.NewDirStore(*assetsDir)
	case *remoteBase != "":
		if *remoteDates == "" {
			log.Fatal("-remote-base requires -remote-dates")
		}
		store = episodes.NewRemoteStore(*remoteBase, strings.Split(*remoteDates, ","))
	case *mongoURI != "":
		client := db.NewClient(*mongoURI, *dbName, *coll)
		if err := client.Connect(ctx); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer client.Close(ctx)
		store = episodes.NewMongoStore(client)
	case *postgresDSN != "":
		client := db.NewPostgresClient(db.PostgresConfig{DSN: *postgresDSN})
		if err := client.Connect(ctx); err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer client.Close()
		store = episodes.NewPostgresStore(client)
	case *supabaseURL != "":
		client := db.NewSupabaseClient(db.SupabaseConfig{
			SupabaseURL: *supabaseURL,
			SupabaseKey: *supabaseKey,
			Password:    *supabasePwd,
		})
		if err := client.Connect(ctx); err != nil {
			log.Fatalf("Failed to connect to Supabase: %v", err)
		}
		defer client.Close()
		store = episodes.NewPostgresStore(client)
	default:
		log.Fatal("one of -assets, -remote-base, -mongo-uri, -postgres-dsn or -supabase-url is required")
	}

	srv := server.New(analysis.NewAnalyzer(store, cfg), *cacheTTL)

	log.Printf("Word analysis server listening on %s", *addr)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

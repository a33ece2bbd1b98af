package episodes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeEpisode(t *testing.T, root, date, srt, metadata string) {
	t.Helper()
	dir := filepath.Join(root, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if srt != "" {
		if err := os.WriteFile(filepath.Join(dir, date+".srt"), []byte(srt), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if metadata != "" {
		if err := os.WriteFile(filepath.Join(dir, date+".json"), []byte(metadata), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDirStore(t *testing.T) {
	root := t.TempDir()
	srt := "1\n00:00:01,000 --> 00:00:02,000\n[Максим] привіт\n"
	meta := `{"thumbnails":{"medium":{"url":"https://i.ytimg.com/vi/abc/mq.jpg"}}}`

	writeEpisode(t, root, "2024-07-24", srt, meta)
	writeEpisode(t, root, "2024-07-17", srt, meta)
	// Non-date directories and files are ignored.
	if err := os.MkdirAll(filepath.Join(root, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}

	store := NewDirStore(root)
	ctx := context.Background()

	dates, err := store.ListDates(ctx)
	if err != nil {
		t.Fatalf("ListDates returned error: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2024-07-17" || dates[1] != "2024-07-24" {
		t.Errorf("ListDates = %v, want sorted episode dates", dates)
	}

	content, err := store.Transcript(ctx, "2024-07-24")
	if err != nil {
		t.Fatalf("Transcript returned error: %v", err)
	}
	if content != srt {
		t.Errorf("Transcript = %q, want %q", content, srt)
	}

	metadata, err := store.Metadata(ctx, "2024-07-24")
	if err != nil {
		t.Fatalf("Metadata returned error: %v", err)
	}
	if metadata.ThumbnailURL() != "https://i.ytimg.com/vi/abc/mq.jpg" {
		t.Errorf("ThumbnailURL = %q", metadata.ThumbnailURL())
	}
}

func TestDirStore_MissingEpisode(t *testing.T) {
	store := NewDirStore(t.TempDir())
	if _, err := store.Transcript(context.Background(), "2024-01-01"); err == nil {
		t.Error("Transcript for missing episode returned nil error")
	}
	if _, err := store.Metadata(context.Background(), "2024-01-01"); err == nil {
		t.Error("Metadata for missing episode returned nil error")
	}
}

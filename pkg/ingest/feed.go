package ingest

import (
	"fmt"

	"github.com/mmcdole/gofeed"

	"stream-search/pkg/domain"
)

// FeedEntry is one episode discovered in a channel feed.
type FeedEntry struct {
	// Date is the publish date in YYYY-MM-DD form, used as the episode
	// identifier.
	Date string

	// PageURL is the episode watch page, when the feed provides one.
	PageURL string

	Metadata *domain.VideoMetadata
}

// FeedParser reads a YouTube channel feed and turns its entries into
// episode metadata. The thumbnail URL is the critical field: it carries
// the /vi/<id>/ segment the analysis derives deep links from.
type FeedParser struct {
	feedParser *gofeed.Parser
}

// NewFeedParser creates a new feed parser.
func NewFeedParser() *FeedParser {
	return &FeedParser{
		feedParser: gofeed.NewParser(),
	}
}

// ParseFromURL fetches and parses a channel feed from the given URL.
// Entries without a resolvable publish date are skipped.
func (p *FeedParser) ParseFromURL(feedURL string) ([]FeedEntry, error) {
	feed, err := p.feedParser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse channel feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	entries := make([]FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.PublishedParsed == nil {
			continue
		}

		entry := FeedEntry{
			Date:    item.PublishedParsed.Format("2006-01-02"),
			PageURL: item.Link,
			Metadata: &domain.VideoMetadata{
				Title: item.Title,
			},
		}

		if url := thumbnailURL(item); url != "" {
			entry.Metadata.Thumbnails = &domain.Thumbnails{
				Medium: &domain.Thumbnail{URL: url},
			}
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no dated entries found in feed")
	}

	return entries, nil
}

// thumbnailURL digs the media:thumbnail URL out of the item extensions,
// falling back to the item image.
func thumbnailURL(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, group := range media["group"] {
			for _, thumb := range group.Children["thumbnail"] {
				if url := thumb.Attrs["url"]; url != "" {
					return url
				}
			}
		}
		for _, thumb := range media["thumbnail"] {
			if url := thumb.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}

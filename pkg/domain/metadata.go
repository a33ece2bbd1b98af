package domain

import "time"

// Thumbnail is one thumbnail variant from episode video metadata.
type Thumbnail struct {
	URL    string `bson:"url" json:"url"`
	Width  int    `bson:"width,omitempty" json:"width,omitempty"`
	Height int    `bson:"height,omitempty" json:"height,omitempty"`
}

// Thumbnails groups the variants we care about. Additional sizes in the
// source metadata are ignored.
type Thumbnails struct {
	Default *Thumbnail `bson:"default,omitempty" json:"default,omitempty"`
	Medium  *Thumbnail `bson:"medium,omitempty" json:"medium,omitempty"`
	High    *Thumbnail `bson:"high,omitempty" json:"high,omitempty"`
}

// VideoMetadata is the per-episode metadata record supplied alongside the
// transcript. Only the thumbnail URL is required by the analysis (it is
// the source of the video ID for deep links); everything else is
// informational.
type VideoMetadata struct {
	Title       string      `bson:"title,omitempty" json:"title,omitempty"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Thumbnails  *Thumbnails `bson:"thumbnails,omitempty" json:"thumbnails,omitempty"`
}

// ThumbnailURL returns the medium thumbnail URL, or "" when absent.
func (m *VideoMetadata) ThumbnailURL() string {
	if m == nil || m.Thumbnails == nil || m.Thumbnails.Medium == nil {
		return ""
	}
	return m.Thumbnails.Medium.URL
}

// Episode is one stored corpus entry: a dated transcript plus its video
// metadata.
type Episode struct {
	// Date is the episode identifier, in YYYY-MM-DD form.
	Date string `bson:"date" json:"date"`

	// SRT is the raw timed-text transcript content.
	SRT string `bson:"srt" json:"srt"`

	// Metadata is the episode's video metadata.
	Metadata *VideoMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`

	// IngestedAt is when this episode was stored.
	IngestedAt time.Time `bson:"ingested_at" json:"ingested_at"`
}

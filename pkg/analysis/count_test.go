package analysis

import "testing"

func TestCountOccurrences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		term     string
		overlaps bool
		want     int
	}{
		{name: "simple", text: "the stream of streams", term: "stream", overlaps: true, want: 2},
		{name: "case insensitive", text: "Stream STREAM stream", term: "stream", overlaps: true, want: 3},
		{name: "overlapping", text: "aaa", term: "aa", overlaps: true, want: 2},
		{name: "no overlap mode", text: "aaa", term: "aa", overlaps: false, want: 1},
		{name: "cyrillic", text: "Це тестовий потік даних, потік", term: "потік", overlaps: true, want: 2},
		{name: "inflected form differs", text: "потоків", term: "потік", overlaps: true, want: 0},
		{name: "substring inside word", text: "кастомний", term: "астом", overlaps: true, want: 1},
		{name: "absent", text: "донат", term: "збір", overlaps: true, want: 0},
		{name: "empty term", text: "anything", term: "", overlaps: true, want: 0},
		{name: "empty text", text: "", term: "x", overlaps: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountOccurrences(tt.text, tt.term, tt.overlaps)
			if got != tt.want {
				t.Errorf("CountOccurrences(%q, %q, %v) = %d, want %d",
					tt.text, tt.term, tt.overlaps, got, tt.want)
			}
		})
	}
}

// Counting must agree with the positional definition: the number of
// start indices i where text[i:i+len(term)] equals the term,
// case-insensitively.
func TestCountOccurrences_PositionalDefinition(t *testing.T) {
	text := "абабаб"
	term := "абаб"

	// Positions 0 and 2 both match.
	got := CountOccurrences(text, term, true)
	if got != 2 {
		t.Errorf("CountOccurrences(%q, %q) = %d, want 2", text, term, got)
	}
}

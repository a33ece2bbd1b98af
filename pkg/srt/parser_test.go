package srt

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// TestParse_WellFormed verifies that N well-formed blocks parse to N
// subtitles with millisecond-accurate start/end times.
func TestParse_WellFormed(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%d\n00:0%d:01,250 --> 00:0%d:03,750\nLine %d\n\n", i+1, i, i, i+1)
	}

	subs := Parse(b.String())
	if len(subs) != 5 {
		t.Fatalf("Parse returned %d subtitles, want 5", len(subs))
	}

	for i, sub := range subs {
		wantStart := float64(i)*60 + 1.25
		wantEnd := float64(i)*60 + 3.75
		if math.Abs(sub.Start-wantStart) > 1e-9 {
			t.Errorf("subtitle %d start = %v, want %v", i, sub.Start, wantStart)
		}
		if math.Abs(sub.End-wantEnd) > 1e-9 {
			t.Errorf("subtitle %d end = %v, want %v", i, sub.End, wantEnd)
		}
		if sub.Text != fmt.Sprintf("Line %d", i+1) {
			t.Errorf("subtitle %d text = %q", i, sub.Text)
		}
	}
}

// TestParse_SkipsMalformedBlocks verifies malformed blocks are dropped
// without affecting their neighbors.
func TestParse_SkipsMalformedBlocks(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:02,000
[Максим] Привіт

2
not a timing line
[Олександра] Пропущено

just two lines

3
00:00:05,500 --> 00:00:07,000
[Аліна] Друга репліка`

	subs := Parse(content)
	if len(subs) != 2 {
		t.Fatalf("Parse returned %d subtitles, want 2", len(subs))
	}
	if subs[0].Text != "[Максим] Привіт" {
		t.Errorf("first subtitle text = %q", subs[0].Text)
	}
	if subs[1].Start != 5.5 {
		t.Errorf("second subtitle start = %v, want 5.5", subs[1].Start)
	}
}

// TestParse_MultilineText verifies multi-line cue bodies are joined with
// a newline and preserved verbatim.
func TestParse_MultilineText(t *testing.T) {
	content := "1\n00:00:00,000 --> 00:00:02,000\nfirst line\nsecond line\n"

	subs := Parse(content)
	if len(subs) != 1 {
		t.Fatalf("Parse returned %d subtitles, want 1", len(subs))
	}
	if subs[0].Text != "first line\nsecond line" {
		t.Errorf("text = %q, want lines joined with newline", subs[0].Text)
	}
}

func TestParse_CRLF(t *testing.T) {
	content := "1\r\n00:00:01,000 --> 00:00:02,000\r\nhello\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nworld\r\n"

	subs := Parse(content)
	if len(subs) != 2 {
		t.Fatalf("Parse returned %d subtitles, want 2", len(subs))
	}
}

func TestExtractUtterance(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		speaker string
		speech  string
		wantNil bool
	}{
		{name: "tagged cue", text: "[Максим] Це тестовий потік даних", speaker: "Максим", speech: "Це тестовий потік даних"},
		{name: "padded label", text: "[ Олександра ]  так, звісно ", speaker: "Олександра", speech: "так, звісно"},
		{name: "no tag", text: "(музика грає)", wantNil: true},
		{name: "empty", text: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractUtterance(tt.text)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ExtractUtterance(%q) = %+v, want nil", tt.text, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractUtterance(%q) = nil", tt.text)
			}
			if got.Speaker != tt.speaker || got.Speech != tt.speech {
				t.Errorf("ExtractUtterance(%q) = %q/%q, want %q/%q",
					tt.text, got.Speaker, got.Speech, tt.speaker, tt.speech)
			}
		})
	}
}

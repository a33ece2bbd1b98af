package ingest

import (
	"errors"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

var (
	errEmptyHTML      = errors.New("empty HTML content")
	errNoSubtitleLink = errors.New("no subtitle link found in HTML")
	errFailedToParse  = errors.New("failed to parse HTML for subtitle link")
)

// FindSubtitleURL locates a subtitle file link (.srt or .vtt) in the
// HTML of an episode page.
//
// Strategy:
//   - Parse the HTML with goquery
//   - Collect all <a> elements with an href
//   - Prefer hrefs that are subtitle files whose anchor text mentions
//     subtitles or transcripts, then any subtitle-file href, then any
//     anchor whose text mentions subtitles
//
// The caller is responsible for resolving relative URLs against the
// page URL, if needed.
func FindSubtitleURL(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", errEmptyHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", errors.Join(errFailedToParse, err)
	}

	type candidate struct {
		href string
	}

	var (
		highPriority   []candidate // subtitle file AND text mentions subtitles
		mediumPriority []candidate // subtitle file
		lowPriority    []candidate // text mentions subtitles
	)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		fileLike := isSubtitleHref(href)
		mentions := strings.Contains(text, "субтитри") ||
			strings.Contains(text, "subtitle") ||
			strings.Contains(text, "transcript")

		c := candidate{href: href}
		switch {
		case fileLike && mentions:
			highPriority = append(highPriority, c)
		case fileLike:
			mediumPriority = append(mediumPriority, c)
		case mentions:
			lowPriority = append(lowPriority, c)
		}
	})

	for _, group := range [][]candidate{highPriority, mediumPriority, lowPriority} {
		if len(group) > 0 {
			return group[0].href, nil
		}
	}

	return "", errNoSubtitleLink
}

// isSubtitleHref reports whether the href path looks like a subtitle
// file.
func isSubtitleHref(href string) bool {
	clean := href
	if i := strings.IndexAny(clean, "?#"); i != -1 {
		clean = clean[:i]
	}
	switch strings.ToLower(path.Ext(clean)) {
	case ".srt", ".vtt":
		return true
	}
	return false
}

// ExtractDescription extracts the readable text of an episode page for
// the stored metadata description.
func ExtractDescription(htmlContent string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err != nil {
		return "", errors.Join(errFailedToParse, err)
	}

	return strings.TrimSpace(article.TextContent), nil
}

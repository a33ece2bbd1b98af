package analysis

import "strings"

// CountOccurrences counts case-insensitive substring matches of term in
// text. With overlaps enabled the scan resumes one byte after each match
// start, so occurrences of the term inside itself are all counted
// ("aa" appears twice in "aaa"). This favors recall over precision,
// matching the historical report numbers.
func CountOccurrences(text, term string, overlaps bool) int {
	if term == "" {
		return 0
	}

	textLower := strings.ToLower(text)
	termLower := strings.ToLower(term)

	count := 0
	pos := strings.Index(textLower, termLower)
	for pos != -1 {
		count++
		advance := 1
		if !overlaps {
			advance = len(termLower)
		}
		next := strings.Index(textLower[pos+advance:], termLower)
		if next == -1 {
			break
		}
		pos += advance + next
	}

	return count
}

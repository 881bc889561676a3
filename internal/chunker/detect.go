package chunker

import (
	"fmt"
	"regexp"
)

const (
	minHeadingLevel = 2
	maxHeadingLevel = 6
)

// headingPatterns[level] matches a line that starts with exactly `level`
// hash characters followed by a space. A line with more hashes cannot
// match a lower level because the position after the hashes must be a
// space, so "### x" is never counted as a level-2 heading.
var headingPatterns [maxHeadingLevel + 1]*regexp.Regexp

// itemMarker matches a line-start numbered-item marker: one or more
// comma-separated integers, an optional literal backslash, a period, and
// a space. Covers "1. ", the escaped "1\. " form, and combined markers
// like "5, 6\. ". Mid-line numbers and numbers without a trailing space
// never match.
var itemMarker = regexp.MustCompile(`(?m)^\d+(?:,\s*\d+)*\\?\. `)

func init() {
	for level := minHeadingLevel; level <= maxHeadingLevel; level++ {
		headingPatterns[level] = regexp.MustCompile(fmt.Sprintf(`(?m)^#{%d} `, level))
	}
}

// DetectHeadingLevel returns the lowest markdown heading level (2-6) that
// occurs at line start at least twice, or 0 when no level qualifies.
// Requiring two occurrences avoids treating a single incidental heading
// as document structure; preferring the lowest level uses the coarsest
// meaningful grouping as the primary split axis.
func DetectHeadingLevel(text string) int {
	return detectHeadingLevel(text, 2)
}

func detectHeadingLevel(text string, minCount int) int {
	for level := minHeadingLevel; level <= maxHeadingLevel; level++ {
		if len(headingPatterns[level].FindAllStringIndex(text, minCount)) >= minCount {
			return level
		}
	}
	return 0
}

// HasMarkdownHeadings reports whether DetectHeadingLevel finds a
// qualifying level.
func HasMarkdownHeadings(text string) bool {
	return DetectHeadingLevel(text) > 0
}

// DetectNumberedItems reports whether the text contains at least two
// line-start numbered-item markers.
func DetectNumberedItems(text string) bool {
	return len(itemMarker.FindAllStringIndex(text, 2)) >= 2
}

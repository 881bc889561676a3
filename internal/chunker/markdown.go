package chunker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChunkMarkdown splits a markdown document along its primary heading
// level, recursing into sub-headings and falling back to numbered-item or
// paragraph splitting when a section exceeds maxSize. Documents with a
// single heading are still treated as heading-structured; documents with
// no headings at all are chunked as plain paragraphs. maxSize <= 0
// selects DefaultMarkdownChunkSize.
func ChunkMarkdown(text string, maxSize int) []Chunk {
	if maxSize <= 0 {
		maxSize = DefaultMarkdownChunkSize
	}
	level := detectHeadingLevel(text, 2)
	if level == 0 {
		level = detectHeadingLevel(text, 1)
	}
	if level == 0 {
		return ChunkText(text, maxSize)
	}
	return splitByHeading(text, level, maxSize, "")
}

// splitByHeading partitions text at line-start headings of the given
// level, each segment keeping its own heading line as a prefix. Oversized
// segments descend into the next heading level when one occurs inside
// them, otherwise they are split along numbered items or paragraphs.
// parent is the section label accumulated from enclosing headings.
func splitByHeading(text string, level, maxSize int, parent string) []Chunk {
	var chunks []Chunk
	for _, segment := range splitBefore(text, headingPatterns[level]) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		heading := headingText(segment, level)
		label := joinSection(parent, heading)

		if len(segment) <= maxSize {
			chunks = append(chunks, Chunk{Text: segment, Section: label})
			continue
		}
		if level < maxHeadingLevel && headingPatterns[level+1].MatchString(segment) {
			chunks = append(chunks, splitByHeading(segment, level+1, maxSize, label)...)
			continue
		}
		if DetectNumberedItems(segment) {
			chunks = append(chunks, splitNumberedItems(segment, level, heading, label, maxSize)...)
			continue
		}
		chunks = append(chunks, fallbackParagraphs(segment, headingPrefix(level, heading), label, maxSize)...)
	}
	return chunks
}

// splitNumberedItems splits an oversized section along numbered-item
// boundaries, grouping adjacent items up to maxSize and labeling each
// group with its verse range. Text before the first marker (the heading
// plus any commentary) becomes an intro chunk under the plain section
// label. Groups after the first get the heading line re-prepended; their
// size accounting includes that prefix. An item that alone exceeds
// maxSize is paragraph-split under its own single range label instead of
// being forced into a group.
func splitNumberedItems(segment string, level int, heading, label string, maxSize int) []Chunk {
	locs := itemMarker.FindAllStringIndex(segment, -1)
	if len(locs) == 0 {
		return fallbackParagraphs(segment, headingPrefix(level, heading), label, maxSize)
	}
	prefix := headingPrefix(level, heading)
	var chunks []Chunk

	if intro := strings.TrimSpace(segment[:locs[0][0]]); intro != "" {
		chunks = append(chunks, Chunk{Text: intro, Section: label})
	}

	var (
		groups int
		items  []string
		size   int
		first  int
		last   int
	)
	flush := func() {
		if len(items) == 0 {
			return
		}
		text := strings.Join(items, "\n\n")
		if groups > 0 {
			text = prefix + text
		}
		chunks = append(chunks, Chunk{Text: text, Section: withRange(label, first, last)})
		groups++
		items = nil
		size = 0
	}

	for i, loc := range locs {
		end := len(segment)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		item := strings.TrimSpace(segment[loc[0]:end])
		if item == "" {
			continue
		}
		lo, hi := verseRange(segment[loc[0]:loc[1]])

		if len(item) > maxSize {
			flush()
			for j, part := range splitParagraphs(item, maxSize) {
				if groups > 0 || j > 0 {
					part = prefix + part
				}
				chunks = append(chunks, Chunk{Text: part, Section: withRange(label, lo, hi)})
			}
			groups++
			continue
		}

		cost := len(item)
		switch {
		case len(items) > 0:
			cost += 2 // blank-line joiner
		case groups > 0:
			cost += len(prefix)
		}
		if len(items) > 0 && size+cost > maxSize {
			flush()
			cost = len(item)
			if groups > 0 {
				cost += len(prefix)
			}
		}
		if len(items) == 0 {
			first = lo
		}
		last = hi
		items = append(items, item)
		size += cost
	}
	flush()
	return chunks
}

// splitBefore splits text at the start of every match of re, keeping each
// match as the prefix of its segment. Text before the first match becomes
// its own leading segment.
func splitBefore(text string, re *regexp.Regexp) []string {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}
	var segments []string
	if locs[0][0] > 0 {
		segments = append(segments, text[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, text[loc[0]:end])
	}
	return segments
}

// headingText returns the heading text when the segment begins with a
// heading of the given level, empty otherwise (e.g. document text before
// the first heading).
func headingText(segment string, level int) string {
	marker := strings.Repeat("#", level) + " "
	if !strings.HasPrefix(segment, marker) {
		return ""
	}
	line := segment
	if i := strings.IndexByte(segment, '\n'); i >= 0 {
		line = segment[:i]
	}
	return strings.TrimSpace(strings.TrimPrefix(line, marker))
}

func headingPrefix(level int, heading string) string {
	if heading == "" {
		return ""
	}
	return strings.Repeat("#", level) + " " + heading + "\n\n"
}

func joinSection(parent, heading string) string {
	switch {
	case parent == "":
		return heading
	case heading == "":
		return parent
	}
	return parent + " > " + heading
}

func withRange(label string, first, last int) string {
	r := fmt.Sprintf("(%d)", first)
	if last != first {
		r = fmt.Sprintf("(%d-%d)", first, last)
	}
	if label == "" {
		return r
	}
	return label + " " + r
}

var markerNumber = regexp.MustCompile(`\d+`)

// verseRange parses the first and last verse numbers from an item marker.
// Plain markers yield first == last; combined markers like "5, 6\. "
// yield both endpoints.
func verseRange(marker string) (int, int) {
	nums := markerNumber.FindAllString(marker, -1)
	first, _ := strconv.Atoi(nums[0])
	last, _ := strconv.Atoi(nums[len(nums)-1])
	return first, last
}

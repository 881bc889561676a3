package chunker

import (
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// ChunkText splits plain text into paragraph-preserving chunks of at most
// maxSize characters. Paragraphs are blank-line separated; whitespace-only
// paragraphs are dropped. A single paragraph longer than maxSize is
// emitted whole rather than split mid-paragraph: the size limit is a soft
// target, content integrity is the hard constraint. maxSize <= 0 selects
// DefaultPlainChunkSize.
func ChunkText(text string, maxSize int) []Chunk {
	if maxSize <= 0 {
		maxSize = DefaultPlainChunkSize
	}
	parts := splitParagraphs(text, maxSize)
	chunks := make([]Chunk, 0, len(parts))
	for _, part := range parts {
		chunks = append(chunks, Chunk{Text: part})
	}
	return chunks
}

// splitParagraphs greedily packs blank-line separated paragraphs into
// strings of at most maxSize characters. The buffer is flushed before a
// paragraph that would overflow it, so only a paragraph that alone
// exceeds maxSize produces an oversized string.
func splitParagraphs(text string, maxSize int) []string {
	var out []string
	var buf strings.Builder
	for _, p := range paragraphBreak.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if buf.Len() > 0 && buf.Len()+2+len(p) > maxSize {
			out = append(out, buf.String())
			buf.Reset()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(p)
	}
	if buf.Len() > 0 {
		out = append(out, buf.String())
	}
	return out
}

// fallbackParagraphs is the paragraph splitter in its fallback role: the
// section label is carried through, and every sub-chunk after the first
// gets the originating heading line re-prepended so that structural
// context survives the split.
func fallbackParagraphs(text, prefix, label string, maxSize int) []Chunk {
	parts := splitParagraphs(text, maxSize)
	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		if i > 0 && prefix != "" {
			part = prefix + part
		}
		chunks = append(chunks, Chunk{Text: part, Section: label})
	}
	return chunks
}

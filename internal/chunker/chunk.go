// Package chunker splits markdown and plain-text documents into
// bounded-size chunks along structural boundaries: heading hierarchy,
// numbered items (verses, clauses), and paragraphs. Each chunk is a
// coherent unit for embedding; a section label records where in the
// document it came from.
//
// The engine is pure string processing. It performs no I/O, keeps no
// state between calls, and is safe to invoke concurrently across
// documents.
package chunker

// Default size limits in characters. Markdown sections are allowed to run
// larger before recursing or falling back, since they carry more
// retrievable context per chunk.
const (
	DefaultPlainChunkSize    = 1000
	DefaultMarkdownChunkSize = 1500
)

// Chunk is one unit of output text plus optional location metadata.
// Section is the " > "-joined heading hierarchy the chunk belongs to,
// empty for plain-text chunks and for content before the first heading.
// Page is populated only by sources that carry page metadata.
type Chunk struct {
	Text    string `json:"text"`
	Section string `json:"section,omitempty"`
	Page    int    `json:"page,omitempty"`
}

type options struct {
	markdownMax int
	plainMax    int
}

// Option configures SmartChunk.
type Option func(*options)

// WithMarkdownMaxSize overrides the chunk size limit used when the
// document is chunked along markdown headings.
func WithMarkdownMaxSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.markdownMax = n
		}
	}
}

// WithPlainMaxSize overrides the chunk size limit used when the document
// is chunked as plain paragraphs.
func WithPlainMaxSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.plainMax = n
		}
	}
}

// SmartChunk chunks text along markdown headings when the document has
// enough heading structure, and as plain paragraphs otherwise.
func SmartChunk(text string, opts ...Option) []Chunk {
	o := options{
		markdownMax: DefaultMarkdownChunkSize,
		plainMax:    DefaultPlainChunkSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if HasMarkdownHeadings(text) {
		return ChunkMarkdown(text, o.markdownMax)
	}
	return ChunkText(text, o.plainMax)
}

package chunker

import (
	"regexp"
	"strings"
	"testing"
)

func verse(marker, letter string, size int) string {
	return marker + strings.Repeat(letter, size-len(marker))
}

func TestChunkMarkdownOneChunkPerSection(t *testing.T) {
	chunks := ChunkMarkdown("#### KVA 1\nContent\n\n#### KVA 2\nMore", 1500)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Section != "KVA 1" || chunks[1].Section != "KVA 2" {
		t.Fatalf("unexpected sections %q, %q", chunks[0].Section, chunks[1].Section)
	}
	if chunks[0].Text != "#### KVA 1\nContent" {
		t.Fatalf("segment should keep its heading line, got %q", chunks[0].Text)
	}
}

func TestChunkMarkdownEmptyDocument(t *testing.T) {
	if chunks := ChunkMarkdown("", 1500); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func TestChunkMarkdownNoHeadingsFallsBackToParagraphs(t *testing.T) {
	chunks := ChunkMarkdown("just\n\nplain\n\ntext", 1500)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != "" {
		t.Fatalf("paragraph fallback must not invent a section, got %q", chunks[0].Section)
	}
}

func TestChunkMarkdownSingleHeadingStillStructured(t *testing.T) {
	chunks := ChunkMarkdown("## Only\n\nbody text", 1500)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != "Only" {
		t.Fatalf("single-heading documents keep heading structure, got section %q", chunks[0].Section)
	}
}

func TestChunkMarkdownContentBeforeFirstHeading(t *testing.T) {
	chunks := ChunkMarkdown("preamble text\n\n## A\nbody\n\n## B\nbody", 1500)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "preamble text" || chunks[0].Section != "" {
		t.Fatalf("leading content must have no section, got %q / %q", chunks[0].Text, chunks[0].Section)
	}
}

func TestChunkMarkdownHeadingOnlySections(t *testing.T) {
	chunks := ChunkMarkdown("## A\n\n## B", 1500)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "## A" || chunks[1].Text != "## B" {
		t.Fatalf("heading-only sections should emit bare heading lines, got %q, %q", chunks[0].Text, chunks[1].Text)
	}
}

func TestChunkMarkdownRecursesIntoSubHeadings(t *testing.T) {
	body := strings.Repeat("c", 300)
	chunks := ChunkMarkdown("## Parent\n\n### Child\n\n"+body, 200)

	var childSections int
	for _, c := range chunks {
		if c.Section == "Parent > Child" {
			childSections++
		}
	}
	if childSections == 0 {
		t.Fatalf("expected a chunk with section %q, got %+v", "Parent > Child", chunks)
	}
}

func TestChunkMarkdownReprefixesHeadingOnParagraphFallback(t *testing.T) {
	p1 := strings.Repeat("a", 180)
	p2 := strings.Repeat("b", 180)
	chunks := ChunkMarkdown("## Long\n\n"+p1+"\n\n"+p2, 200)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "## Long\n\n"+p1 {
		t.Fatalf("first fallback chunk keeps its natural heading, got %q", chunks[0].Text)
	}
	if !strings.HasPrefix(chunks[1].Text, "## Long\n\n") {
		t.Fatalf("later fallback chunks re-prepend the heading, got %q", chunks[1].Text)
	}
	if chunks[1].Section != "Long" {
		t.Fatalf("fallback carries the section label, got %q", chunks[1].Section)
	}
}

func TestChunkMarkdownVerseGrouping(t *testing.T) {
	text := "## Battle\n\n" +
		verse("1\\. ", "a", 100) + "\n\n" +
		verse("2\\. ", "b", 100) + "\n\n" +
		verse("3\\. ", "c", 100)
	chunks := ChunkMarkdown(text, 300)
	if len(chunks) != 3 {
		t.Fatalf("expected intro plus 2 groups, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Text != "## Battle" || chunks[0].Section != "Battle" {
		t.Fatalf("unexpected intro chunk %+v", chunks[0])
	}

	rangeLabel := regexp.MustCompile(`^Battle \(\d+-\d+\)$`)
	if !rangeLabel.MatchString(chunks[1].Section) {
		t.Fatalf("expected a verse range section, got %q", chunks[1].Section)
	}
	if chunks[1].Section != "Battle (1-2)" {
		t.Fatalf("expected verses 1-2 grouped, got %q", chunks[1].Section)
	}
	if chunks[2].Section != "Battle (3)" {
		t.Fatalf("single-verse group uses a single value, got %q", chunks[2].Section)
	}
	if !strings.HasPrefix(chunks[2].Text, "## Battle\n\n") {
		t.Fatalf("groups after the first re-prepend the heading, got %q", chunks[2].Text)
	}
	if strings.HasPrefix(chunks[1].Text, "## Battle") {
		t.Fatal("the first group follows the heading naturally and gets no prefix")
	}
}

func TestChunkMarkdownVerseGroupingSizeBound(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("## Psalm\n")
	for i := 1; i <= 40; i++ {
		sb.WriteString("\n")
		sb.WriteString(verse("1\\. ", "v", 60))
		sb.WriteString("\n")
	}
	chunks := ChunkMarkdown(sb.String(), 250)
	if len(chunks) < 5 {
		t.Fatalf("expected many groups, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c.Text) > 250 {
			t.Fatalf("chunk %d exceeds the limit: %d chars", i, len(c.Text))
		}
	}
}

func TestChunkMarkdownCombinedVerseMarker(t *testing.T) {
	text := "## Psalms\n\n" +
		verse("1\\. ", "a", 80) + "\n\n" +
		verse("5, 6\\. ", "b", 80)
	chunks := ChunkMarkdown(text, 120)

	var sections []string
	for _, c := range chunks {
		sections = append(sections, c.Section)
	}
	want := []string{"Psalms", "Psalms (1)", "Psalms (5-6)"}
	if len(sections) != len(want) {
		t.Fatalf("expected sections %v, got %v", want, sections)
	}
	for i := range want {
		if sections[i] != want[i] {
			t.Fatalf("section %d: got %q, want %q", i, sections[i], want[i])
		}
	}
}

func TestChunkMarkdownOversizedVerseParagraphSplit(t *testing.T) {
	long := verse("1\\. ", "x", 250) + "\n\n" + strings.Repeat("y", 250)
	text := "## Law\n\n" + long + "\n\n" + verse("2\\. ", "z", 50)
	chunks := ChunkMarkdown(text, 300)
	if len(chunks) <= 2 {
		t.Fatalf("oversized verse must be paragraph-split, got %d chunks", len(chunks))
	}

	var splitParts int
	for _, c := range chunks {
		if c.Section == "Law (1)" {
			splitParts++
		}
	}
	if splitParts != 2 {
		t.Fatalf("expected the oversized verse split into 2 parts under its own label, got %d", splitParts)
	}
}

func TestChunkMarkdownReassembly(t *testing.T) {
	bodies := []string{
		strings.Repeat("alpha ", 30),
		strings.Repeat("beta ", 30),
		strings.Repeat("gamma ", 30),
	}
	text := "## One\n\n" + bodies[0] + "\n\n## Two\n\n" + bodies[1] + "\n\n## Three\n\n" + bodies[2]
	chunks := ChunkMarkdown(text, 100)

	var all strings.Builder
	for _, c := range chunks {
		all.WriteString(c.Text)
		all.WriteString("\n")
	}
	joined := all.String()
	last := -1
	for _, body := range bodies {
		idx := strings.Index(joined, strings.TrimSpace(body))
		if idx < 0 {
			t.Fatalf("body %q missing from output", body[:12])
		}
		if idx < last {
			t.Fatal("chunk order does not follow document order")
		}
		last = idx
	}
}

func TestSmartChunkDispatch(t *testing.T) {
	md := "## A\n\nbody\n\n## B\n\nbody"
	chunks := SmartChunk(md)
	if len(chunks) != 2 || chunks[0].Section != "A" {
		t.Fatalf("markdown input should take the heading path, got %+v", chunks)
	}

	plain := strings.Repeat("p", 30) + "\n\n" + strings.Repeat("q", 30)
	chunks = SmartChunk(plain, WithPlainMaxSize(40))
	if len(chunks) != 2 {
		t.Fatalf("plain input should honor the plain size option, got %d chunks", len(chunks))
	}
	for _, c := range chunks {
		if c.Section != "" {
			t.Fatalf("plain path must not label sections, got %q", c.Section)
		}
	}
}

func TestSmartChunkMarkdownSizeOption(t *testing.T) {
	body := strings.Repeat("m", 120)
	md := "## A\n\n" + body + "\n\n## B\n\n" + body
	chunks := SmartChunk(md, WithMarkdownMaxSize(60))
	if len(chunks) <= 2 {
		t.Fatalf("small markdown limit should force fallback splits, got %d chunks", len(chunks))
	}
}

func TestChunkMarkdownNoEmptyChunks(t *testing.T) {
	text := "## A\n\n\n\n## B\n\n \n\n## C\ncontent"
	for _, c := range ChunkMarkdown(text, 1500) {
		if strings.TrimSpace(c.Text) == "" {
			t.Fatalf("empty chunk emitted: %+v", c)
		}
	}
}

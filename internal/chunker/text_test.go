package chunker

import (
	"strings"
	"testing"
)

func TestChunkTextKeepsFittingParagraphsTogether(t *testing.T) {
	chunks := ChunkText("Para 1\n\nPara 2\n\nPara 3", 1000)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "Para 1\n\nPara 2\n\nPara 3" {
		t.Fatalf("unexpected chunk text %q", chunks[0].Text)
	}
	if chunks[0].Section != "" {
		t.Fatalf("plain chunks carry no section, got %q", chunks[0].Section)
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	if chunks := ChunkText("", 100); len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := ChunkText("  \n\n\t\n\n ", 100); len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestChunkTextSplitsAtParagraphBoundaries(t *testing.T) {
	a := strings.Repeat("a", 60)
	b := strings.Repeat("b", 60)
	c := strings.Repeat("c", 60)
	chunks := ChunkText(a+"\n\n"+b+"\n\n"+c, 130)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != a+"\n\n"+b {
		t.Fatalf("first chunk should hold two paragraphs, got %q", chunks[0].Text)
	}
	if chunks[1].Text != c {
		t.Fatalf("second chunk should hold the last paragraph, got %q", chunks[1].Text)
	}
	for _, c := range chunks {
		if len(c.Text) > 130 {
			t.Fatalf("chunk exceeds size limit: %d", len(c.Text))
		}
	}
}

func TestChunkTextOversizedParagraphEmittedWhole(t *testing.T) {
	big := strings.Repeat("x", 500)
	chunks := ChunkText("small\n\n"+big+"\n\ntail", 100)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].Text != big {
		t.Fatal("oversized paragraph must be emitted unsplit")
	}
}

func TestChunkTextDropsBlankParagraphs(t *testing.T) {
	chunks := ChunkText("one\n\n   \n\ntwo", 4)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			t.Fatal("blank paragraph leaked into output")
		}
	}
}

func TestChunkTextDefaultSize(t *testing.T) {
	text := strings.Repeat("word ", 100)
	chunks := ChunkText(text, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk under the default limit, got %d", len(chunks))
	}
}

func TestChunkTextReassembly(t *testing.T) {
	paragraphs := []string{"alpha", "beta gamma", "delta", "epsilon zeta eta", "theta"}
	text := strings.Join(paragraphs, "\n\n")
	chunks := ChunkText(text, 15)

	var got []string
	for _, c := range chunks {
		got = append(got, strings.Split(c.Text, "\n\n")...)
	}
	if len(got) != len(paragraphs) {
		t.Fatalf("expected %d paragraphs after reassembly, got %d", len(paragraphs), len(got))
	}
	for i := range got {
		if got[i] != paragraphs[i] {
			t.Fatalf("paragraph %d: got %q, want %q", i, got[i], paragraphs[i])
		}
	}
}

package chunker

import "testing"

func TestDetectHeadingLevelThreshold(t *testing.T) {
	if level := DetectHeadingLevel("## A\nx"); level != 0 {
		t.Fatalf("single heading should not qualify, got level %d", level)
	}
	if level := DetectHeadingLevel("## A\nx\n\n## B\ny"); level != 2 {
		t.Fatalf("expected level 2, got %d", level)
	}
}

func TestDetectHeadingLevelPrefersLowest(t *testing.T) {
	text := "## A\n\n### A1\n\n### A2\n\n## B\n\n### B1\n\n### B2"
	if level := DetectHeadingLevel(text); level != 2 {
		t.Fatalf("expected lowest qualifying level 2, got %d", level)
	}
}

func TestDetectHeadingLevelIgnoresDeeperHashes(t *testing.T) {
	// "### x" must never count as a level-2 occurrence.
	if level := DetectHeadingLevel("### A\nx\n\n### B\ny"); level != 3 {
		t.Fatalf("expected level 3, got %d", level)
	}
}

func TestDetectHeadingLevelSingleOccurrence(t *testing.T) {
	if level := detectHeadingLevel("#### Only\nbody", 1); level != 4 {
		t.Fatalf("expected level 4 with min count 1, got %d", level)
	}
}

func TestHasMarkdownHeadings(t *testing.T) {
	if HasMarkdownHeadings("plain text\n\nmore text") {
		t.Fatal("plain text should have no headings")
	}
	if HasMarkdownHeadings("## once\nbody") {
		t.Fatal("a single heading should not count as heading structure")
	}
	if !HasMarkdownHeadings("## a\n\n## b") {
		t.Fatal("two level-2 headings should count")
	}
}

func TestDetectNumberedItems(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"plain markers", "1. first\n2. second", true},
		{"escaped markers", "1\\. first\n\n2\\. second", true},
		{"combined marker", "1\\. first\n\n5, 6\\. fifth and sixth", true},
		{"single marker", "1. only one", false},
		{"mid-line numbers", "see 1. and 2. for details\nmore 3. text", false},
		{"no trailing space", "1.first\n2.second", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		if got := DetectNumberedItems(tc.text); got != tc.want {
			t.Errorf("%s: DetectNumberedItems = %v, want %v", tc.name, got, tc.want)
		}
	}
}

package ingestion

import "testing"

func withTokenEstimator(t *testing.T, fn func(string) int) {
	t.Helper()
	orig := estimateTokensFunc
	estimateTokensFunc = fn
	t.Cleanup(func() { estimateTokensFunc = orig })
}

func TestStatsCollectorSummary(t *testing.T) {
	withTokenEstimator(t, func(text string) int { return len(text) })

	s := NewStatsCollector(10)
	s.ObserveFile()
	s.ObserveFile()
	s.ObserveChunk("aaa")
	s.ObserveChunk("bbbbb")
	s.ObserveChunk("ccccccccccccc")

	sum := s.Summary()
	if sum.Files != 2 {
		t.Fatalf("expected 2 files, got %d", sum.Files)
	}
	if sum.Chunks != 3 {
		t.Fatalf("expected 3 chunks, got %d", sum.Chunks)
	}
	if sum.Oversized != 1 {
		t.Fatalf("expected 1 oversized chunk, got %d", sum.Oversized)
	}
	if sum.MedianTokens != 5 {
		t.Fatalf("expected median 5, got %d", sum.MedianTokens)
	}
	if sum.MaxTokens != 13 {
		t.Fatalf("expected max 13, got %d", sum.MaxTokens)
	}
}

func TestStatsCollectorEmpty(t *testing.T) {
	sum := NewStatsCollector(100).Summary()
	if sum.Chunks != 0 || sum.MedianTokens != 0 || sum.MaxTokens != 0 {
		t.Fatalf("empty collector should report zeros, got %+v", sum)
	}
}

func TestEstimateTokensFallback(t *testing.T) {
	withTokenEstimator(t, defaultEstimateTokens)
	if n := EstimateTokens(""); n < 1 {
		t.Fatalf("token estimate must be at least 1, got %d", n)
	}
}

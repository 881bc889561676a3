package ingestion

import "sort"

// StatsCollector accumulates per-source ingestion statistics.
type StatsCollector struct {
	limit     int
	tokens    []int
	files     int
	oversized int
}

// Summary reports what a source ingestion produced.
type Summary struct {
	Files        int
	Chunks       int
	Oversized    int
	MedianTokens int
	MaxTokens    int
}

func NewStatsCollector(sizeLimit int) *StatsCollector {
	return &StatsCollector{limit: sizeLimit}
}

func (s *StatsCollector) ObserveFile() {
	s.files++
}

func (s *StatsCollector) ObserveChunk(text string) {
	s.tokens = append(s.tokens, EstimateTokens(text))
	if s.limit > 0 && len(text) > s.limit {
		s.oversized++
	}
}

func (s *StatsCollector) Summary() Summary {
	out := Summary{
		Files:     s.files,
		Chunks:    len(s.tokens),
		Oversized: s.oversized,
	}
	if len(s.tokens) == 0 {
		return out
	}
	sorted := make([]int, len(s.tokens))
	copy(sorted, s.tokens)
	sort.Ints(sorted)
	out.MedianTokens = sorted[len(sorted)/2]
	out.MaxTokens = sorted[len(sorted)-1]
	return out
}

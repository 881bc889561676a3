package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nrivera/botkb/internal/db"
	"github.com/nrivera/botkb/internal/ingestion/embeddings"
	"github.com/nrivera/botkb/internal/mcp/tools/types"
)

type KBSearchService struct {
	Repository  *db.SearchRepository
	EmbedClient *embeddings.Client
}

func NewKBSearchService(repo *db.SearchRepository, embed *embeddings.Client) *KBSearchService {
	return &KBSearchService{Repository: repo, EmbedClient: embed}
}

func (s *KBSearchService) SearchChunks(ctx context.Context, query string, limit int, source, docType *string) ([]types.ChunkResult, error) {
	if strings.TrimSpace(query) == "" {
		return []types.ChunkResult{}, nil
	}

	vectors, err := s.EmbedClient.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return []types.ChunkResult{}, nil
	}

	rows, err := s.Repository.SearchChunks(ctx, vectors[0], limit, source, docType)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}

	results := make([]types.ChunkResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, db.ToChunkResult(row))
	}
	return results, nil
}

func (s *KBSearchService) ListSources(ctx context.Context) ([]types.SourceSummary, error) {
	stats, err := s.Repository.SourceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch source stats: %w", err)
	}
	out := make([]types.SourceSummary, 0, len(stats))
	for _, st := range stats {
		out = append(out, types.SourceSummary{
			Source:    st.Source,
			Chunks:    st.Chunks,
			UpdatedAt: st.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

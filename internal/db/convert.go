package db

import (
	"github.com/nrivera/botkb/internal/mcp/tools/types"
)

func ToChunkResult(row ChunkSearchRow) types.ChunkResult {
	// Cosine distance ranges 0..2, map onto a 0..1 similarity score.
	similarity := 1 - (row.Distance / 2.0)
	return types.ChunkResult{
		Source:     row.Source,
		Path:       row.Path,
		Revision:   row.Revision,
		DocType:    row.DocType,
		Section:    row.Section,
		Page:       row.Page,
		Snippet:    row.Snippet,
		Similarity: similarity,
		SourceURL:  row.SourceURL,
	}
}

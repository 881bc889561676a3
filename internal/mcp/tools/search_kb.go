package tools

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nrivera/botkb/internal/config"
	"github.com/nrivera/botkb/internal/gitrepo"
	"github.com/nrivera/botkb/internal/mcp/tools/types"
)

type ChunkSearchService interface {
	SearchChunks(ctx context.Context, query string, limit int, source, docType *string) ([]types.ChunkResult, error)
}

// SearchKBTool describes the search_kb tool schema.
func SearchKBTool() mcp.Tool {
	return mcp.NewTool("search_kb",
		mcp.WithDescription("Semantic search across the knowledge base using embeddings. Returns relevant document chunks with similarity scores and section labels."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language search query (e.g., 'How do I reset my password?')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
		mcp.WithString("source",
			mcp.Description("Optional: Filter results by source name (e.g., 'handbook')"),
		),
		mcp.WithString("doc_type",
			mcp.Description("Optional: Filter results by document type"),
			mcp.Enum("markdown", "plain"),
		),
		mcp.WithBoolean("include_full_file",
			mcp.Description("Include full file content in results (default: false)"),
		),
	)
}

type SearchKBHandler struct{ Service ChunkSearchService }

func (h *SearchKBHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	limit := parseLimit(args["limit"], 10)
	var sourcePtr, docTypePtr *string
	if v, ok := args["source"].(string); ok && v != "" {
		sourcePtr = &v
	}
	if v, ok := args["doc_type"].(string); ok && v != "" {
		docTypePtr = &v
	}
	includeFull := false
	if v, ok := args["include_full_file"].(bool); ok {
		includeFull = v
	}

	results, err := h.Service.SearchChunks(ctx, query, limit, sourcePtr, docTypePtr)
	if err != nil {
		return nil, err
	}

	if includeFull {
		// Enrich with full file content from the local clone cache
		for i := range results {
			r := &results[i]
			if r.Source == "" || r.Revision == "" || r.Revision == "local" || r.Path == "" {
				continue
			}
			localPath := filepath.Join(config.CacheDir(), r.Source)
			gr := gitrepo.New(gitrepo.RepoConfig{Path: localPath})
			if content, err := gr.ShowFile(ctx, r.Revision, r.Path); err == nil {
				s := string(content)
				r.Content = &s
			}
		}
	}

	response := struct {
		Query   string              `json:"query"`
		Results []types.ChunkResult `json:"results"`
		Total   int                 `json:"total_found"`
	}{Query: query, Results: results, Total: len(results)}

	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}

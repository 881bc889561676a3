package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nrivera/botkb/internal/mcp/tools/types"
)

type SourceListService interface {
	ListSources(ctx context.Context) ([]types.SourceSummary, error)
}

// ListSourcesTool describes the list_sources tool schema.
func ListSourcesTool() mcp.Tool {
	return mcp.NewTool("list_sources",
		mcp.WithDescription("List the ingested knowledge base sources with chunk counts and last update timestamps."),
	)
}

type ListSourcesHandler struct{ Service SourceListService }

func (h *ListSourcesHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sources, err := h.Service.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	response := struct {
		Sources []types.SourceSummary `json:"sources"`
		Total   int                   `json:"total"`
	}{Sources: sources, Total: len(sources)}

	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}

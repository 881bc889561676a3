package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/nrivera/botkb/internal/config"
	"github.com/nrivera/botkb/internal/db"
	"github.com/nrivera/botkb/internal/ingestion"
	"github.com/nrivera/botkb/internal/ingestion/embeddings"
	"github.com/nrivera/botkb/internal/logging"
	"github.com/nrivera/botkb/internal/mcp/tools"
)

type Config struct {
	Tools    []Registration
	Options  []server.StreamableHTTPOption
	Database *db.Database
}

// DefaultConfig wires the search tools against the configured database
// and embedding model. Startup failures here are fatal: the server has
// nothing to serve without them.
func DefaultConfig() Config {
	cfg, err := ingestion.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	database, err := db.NewDatabase(db.Config{DSN: cfg.PostgresURL, AppName: "kb-server"})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	logger := logging.ForLevel(config.LogLevel()).WithName("kb-server")
	embedClient, err := embeddings.NewClient(cfg.OllamaURL, cfg.EmbeddingModel, cfg.LLMCallTimeout, logger)
	if err != nil {
		log.Fatalf("failed to init embedding client: %v", err)
	}

	service := tools.NewKBSearchService(db.NewSearchRepository(database), embedClient)

	return Config{
		Tools: []Registration{
			{Tool: tools.SearchKBTool(), Handler: &tools.SearchKBHandler{Service: service}},
			{Tool: tools.ListSourcesTool(), Handler: &tools.ListSourcesHandler{Service: service}},
		},
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp/jsonrpc"),
			server.WithStateLess(true),
		},
		Database: database,
	}
}

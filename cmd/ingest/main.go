package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nrivera/botkb/internal/chunker"
	"github.com/nrivera/botkb/internal/config"
	"github.com/nrivera/botkb/internal/db"
	dbmigrate "github.com/nrivera/botkb/internal/db/migrate"
	"github.com/nrivera/botkb/internal/docs"
	"github.com/nrivera/botkb/internal/ingestion"
	"github.com/nrivera/botkb/internal/ingestion/embeddings"
	"github.com/nrivera/botkb/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Knowledge base ingestion CLI",
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Ingest knowledge base sources into the vector store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ingestion.LoadConfig()
		if err != nil {
			return err
		}

		manifest, err := ingestion.LoadManifest(cfg.SourcesManifest)
		if err != nil {
			return err
		}

		database, err := db.NewDatabase(db.Config{DSN: cfg.PostgresURL, AppName: "ingest"})
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() { <-sigs; cancel() }()

		if err := dbmigrate.EnsureCurrent(ctx, database.Bun(), "", cfg.AutoMigrate); err != nil {
			return err
		}

		logger := logging.ForLevel(config.LogLevel()).WithName("ingest")
		embedClient, err := embeddings.NewClient(cfg.OllamaURL, cfg.EmbeddingModel, cfg.LLMCallTimeout, logger)
		if err != nil {
			return err
		}

		ing := docs.Ingester{
			DB:              database,
			Client:          embedClient,
			GitHub:          ingestion.NewGitHubClient(cfg.GitHubToken),
			Log:             logger,
			CacheDir:        cfg.CacheDir,
			MarkdownMaxSize: cfg.MarkdownChunkSize,
			PlainMaxSize:    cfg.PlainChunkSize,
			MaxFiles:        cfg.MaxFilesPerSource,
			MaxChunks:       cfg.MaxChunksPerSource,
			ModelName:       cfg.EmbeddingModel,
		}

		return ing.Run(ctx, manifest.Sources)
	},
}

var chunkCmd = &cobra.Command{
	Use:   "chunk <file>",
	Short: "Preview how a document splits into chunks (no database writes)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ingestion.LoadConfig()
		if err != nil {
			return err
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		chunks := chunker.SmartChunk(string(content),
			chunker.WithMarkdownMaxSize(cfg.MarkdownChunkSize),
			chunker.WithPlainMaxSize(cfg.PlainChunkSize))

		out := cmd.OutOrStdout()
		for i, c := range chunks {
			section := c.Section
			if section == "" {
				section = "-"
			}
			fmt.Fprintf(out, "chunk %d\tsection=%s\tbytes=%d\ttokens~%d\n",
				i, section, len(c.Text), ingestion.EstimateTokens(c.Text))
		}
		fmt.Fprintf(out, "total: %d chunks\n", len(chunks))
		return nil
	},
}

func main() {
	// Bind config/env for all subcommands
	config.Init(rootCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(chunkCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("ingest: %v", err)
	}
}

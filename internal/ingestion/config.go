package ingestion

import (
	"fmt"
	"strings"
	"time"

	"github.com/nrivera/botkb/internal/config"
)

type Config struct {
	PostgresURL        string
	OllamaURL          string
	EmbeddingModel     string
	CacheDir           string
	SourcesManifest    string
	MarkdownChunkSize  int
	PlainChunkSize     int
	MaxFilesPerSource  int // 0 means no limit
	MaxChunksPerSource int // 0 means no limit
	GitHubToken        string
	AutoMigrate        bool
	LLMCallTimeout     time.Duration
}

func LoadConfig() (Config, error) {
	cfg := Config{
		PostgresURL:        config.PostgresURL(),
		OllamaURL:          config.OllamaURL(),
		EmbeddingModel:     config.EmbeddingModel(),
		CacheDir:           config.CacheDir(),
		SourcesManifest:    config.SourcesManifest(),
		MarkdownChunkSize:  config.MarkdownChunkSize(),
		PlainChunkSize:     config.PlainChunkSize(),
		MaxFilesPerSource:  config.MaxFilesPerSource(),
		MaxChunksPerSource: config.MaxChunksPerSource(),
		GitHubToken:        config.GitHubToken(),
		AutoMigrate:        config.AutoMigrate(),
	}

	timeout, err := parseDuration(config.LLMCallTimeout(), 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid llm_call_timeout: %w", err)
	}
	cfg.LLMCallTimeout = timeout

	return cfg, nil
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, err
	}
	return d, nil
}

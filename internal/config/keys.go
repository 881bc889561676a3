package config

const (
	KeyPostgresURL       = "postgres_url"
	KeyOllamaURL         = "ollama_url"
	KeyLogLevel          = "log_level"
	KeyCacheDir          = "cache_dir"
	KeyEmbeddingModel    = "embedding_model_name"
	KeyMarkdownChunkSize = "markdown_chunk_size"
	KeyPlainChunkSize    = "plain_chunk_size"
	KeySourcesManifest   = "sources_manifest"
	KeyGitHubToken       = "github_token"
	KeyAutoMigrate       = "auto_migrate"
	KeyLLMCallTimeout    = "llm_call_timeout"
	KeyMaxFilesPerSource = "max_files_per_source"
	KeyMaxChunksPerSrc   = "max_chunks_per_source"
)

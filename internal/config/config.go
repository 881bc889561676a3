package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyCacheDir, "ignore/cache")
	viper.SetDefault(KeyEmbeddingModel, "nomic-embed-text")
	viper.SetDefault(KeyMarkdownChunkSize, 1500)
	viper.SetDefault(KeyPlainChunkSize, 1000)
	viper.SetDefault(KeySourcesManifest, "manifests/sources.yaml")
	viper.SetDefault(KeyAutoMigrate, false)
	viper.SetDefault(KeyLLMCallTimeout, "120s")
	viper.SetDefault(KeyMaxFilesPerSource, 0)
	viper.SetDefault(KeyMaxChunksPerSrc, 0)
}

func PostgresURL() string     { return viper.GetString(KeyPostgresURL) }
func OllamaURL() string       { return viper.GetString(KeyOllamaURL) }
func LogLevel() string        { return viper.GetString(KeyLogLevel) }
func CacheDir() string        { return viper.GetString(KeyCacheDir) }
func EmbeddingModel() string  { return viper.GetString(KeyEmbeddingModel) }
func MarkdownChunkSize() int  { return viper.GetInt(KeyMarkdownChunkSize) }
func PlainChunkSize() int     { return viper.GetInt(KeyPlainChunkSize) }
func SourcesManifest() string { return viper.GetString(KeySourcesManifest) }
func GitHubToken() string     { return viper.GetString(KeyGitHubToken) }
func AutoMigrate() bool       { return viper.GetBool(KeyAutoMigrate) }
func MaxFilesPerSource() int  { return viper.GetInt(KeyMaxFilesPerSource) }
func MaxChunksPerSource() int { return viper.GetInt(KeyMaxChunksPerSrc) }
func LLMCallTimeout() string  { return viper.GetString(KeyLLMCallTimeout) }

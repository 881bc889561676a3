package db

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

// KnowledgeChunk represents an embedded chunk of a knowledge base document.
type KnowledgeChunk struct {
	bun.BaseModel `bun:"table:knowledge_chunks"`

	ID             string          `bun:"id,pk"` // sha256(source|path|revision|idx|text)
	Source         string          `bun:"source"`
	Path           string          `bun:"path"` // source-relative path
	Revision       string          `bun:"revision"`
	DocType        string          `bun:"doc_type"` // markdown|plain
	ChunkIndex     int             `bun:"chunk_index"`
	ChunkText      string          `bun:"chunk_text"`
	Section        *string         `bun:"section,nullzero"`
	Page           *int            `bun:"page,nullzero"`
	Embedding      pgvector.Vector `bun:"embedding"` // vector(768)
	EmbeddingModel string          `bun:"embedding_model"`
	UpdatedAt      time.Time       `bun:"updated_at,nullzero,default:now()"`
	SourceURL      *string         `bun:"source_url,nullzero"`
}

func (KnowledgeChunk) TableName() string { return "knowledge_chunks" }

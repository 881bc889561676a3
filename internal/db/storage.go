package db

import (
	"context"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

type SearchRepository struct {
	db *bun.DB
}

type ChunkSearchRow struct {
	KnowledgeChunk `bun:",extend"`
	Snippet        string  `bun:"snippet"`
	Distance       float64 `bun:"distance"`
}

// SourceStat aggregates chunk counts per ingested source.
type SourceStat struct {
	Source    string    `bun:"source"`
	Chunks    int       `bun:"chunks"`
	UpdatedAt time.Time `bun:"updated_at"`
}

func NewSearchRepository(database *Database) *SearchRepository {
	return &SearchRepository{db: database.Bun()}
}

func (r *SearchRepository) SearchChunks(ctx context.Context, embedding []float32, limit int, source, docType *string) ([]ChunkSearchRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []ChunkSearchRow
	q := r.db.NewSelect().Model(&results).
		Column("id", "source", "path", "revision", "doc_type", "chunk_index", "section", "page", "source_url").
		ColumnExpr("substring(chunk_text for 400) AS snippet").
		ColumnExpr("embedding <=> ? AS distance", pgvector.NewVector(embedding)).
		OrderExpr("distance").
		Limit(limit)
	if source != nil && *source != "" {
		q = q.Where("source = ?", *source)
	}
	if docType != nil && *docType != "" {
		q = q.Where("doc_type = ?", *docType)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *SearchRepository) SourceStats(ctx context.Context) ([]SourceStat, error) {
	var stats []SourceStat
	err := r.db.NewSelect().Model((*KnowledgeChunk)(nil)).
		Column("source").
		ColumnExpr("count(*) AS chunks").
		ColumnExpr("max(updated_at) AS updated_at").
		GroupExpr("source").
		OrderExpr("source").
		Scan(ctx, &stats)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// ChunkBatchWriter replaces the chunks of one source atomically. All existing
// rows for the source are deleted inside the transaction, new rows accumulate
// through Add, and Commit makes the swap visible.
type ChunkBatchWriter struct {
	tx        bun.Tx
	source    string
	count     int
	committed bool
}

func NewChunkBatchWriter(ctx context.Context, database *Database, source string) (*ChunkBatchWriter, error) {
	tx, err := database.Bun().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	if _, err := tx.NewDelete().
		Model((*KnowledgeChunk)(nil)).
		Where("source = ?", source).
		Exec(ctx); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return &ChunkBatchWriter{tx: tx, source: source}, nil
}

func (w *ChunkBatchWriter) Add(ctx context.Context, chunks []*KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if _, err := w.tx.NewInsert().Model(&chunks).Exec(ctx); err != nil {
		return err
	}
	w.count += len(chunks)
	return nil
}

func (w *ChunkBatchWriter) Count() int { return w.count }

func (w *ChunkBatchWriter) Commit() error {
	if err := w.tx.Commit(); err != nil {
		return err
	}
	w.committed = true
	return nil
}

// Rollback is safe to defer: it is a no-op after a successful Commit.
func (w *ChunkBatchWriter) Rollback() {
	if !w.committed {
		_ = w.tx.Rollback()
	}
}

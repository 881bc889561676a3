package docs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/pgvector/pgvector-go"

	"github.com/nrivera/botkb/internal/chunker"
	"github.com/nrivera/botkb/internal/db"
	"github.com/nrivera/botkb/internal/gitrepo"
	"github.com/nrivera/botkb/internal/ingestion"
	"github.com/nrivera/botkb/internal/logging"
)

type EmbeddingClient interface {
	EmbedTexts(ctx context.Context, inputs []string) ([][]float32, error)
}

type Ingester struct {
	DB              *db.Database
	Client          EmbeddingClient
	GitHub          *github.Client
	Log             logging.Logger
	CacheDir        string
	MarkdownMaxSize int
	PlainMaxSize    int
	MaxFiles        int
	MaxChunks       int
	ModelName       string
}

var defaultIncludes = []string{"**/*.md", "**/*.mdx", "**/*.txt"}

func (i *Ingester) Run(ctx context.Context, sources []ingestion.Source) error {
	for _, s := range sources {
		if err := i.ingestSourceAtomic(ctx, s); err != nil {
			return fmt.Errorf("failed to ingest %s: %w", s.Name, err)
		}
	}
	return nil
}

// sourceTree abstracts a materialized source: a file listing at a fixed
// revision plus a reader for individual files.
type sourceTree struct {
	rev   string
	files []string
	read  func(path string) ([]byte, error)
	info  *ingestion.RepoInfo
}

func (i *Ingester) ingestSourceAtomic(ctx context.Context, src ingestion.Source) error {
	tree, err := i.materialize(ctx, src)
	if err != nil {
		return err
	}

	writer, err := db.NewChunkBatchWriter(ctx, i.DB, src.Name)
	if err != nil {
		return fmt.Errorf("create batch writer: %w", err)
	}
	defer writer.Rollback()

	include := src.Include
	if len(include) == 0 {
		include = defaultIncludes
	}
	includeRx := globsToRegexp(include)
	excludeRx := globsToRegexp(src.Exclude)
	selected := filterFiles(tree.files, includeRx, excludeRx, i.MaxFiles)

	stats := ingestion.NewStatsCollector(i.MarkdownMaxSize)
	log := i.Log.WithValues("source", src.Name, "revision", tree.rev)

	for _, p := range selected {
		if i.MaxChunks > 0 && writer.Count() >= i.MaxChunks {
			log.Info("chunk limit reached, stopping early", "limit", i.MaxChunks)
			break
		}

		content, err := tree.read(p)
		if err != nil {
			log.Error(err, "skipping unreadable file", "path", p)
			continue
		}

		chunks := chunker.SmartChunk(string(content),
			chunker.WithMarkdownMaxSize(i.MarkdownMaxSize),
			chunker.WithPlainMaxSize(i.PlainMaxSize))
		if len(chunks) == 0 {
			continue
		}
		if i.MaxChunks > 0 && writer.Count()+len(chunks) > i.MaxChunks {
			chunks = chunks[:i.MaxChunks-writer.Count()]
		}

		texts := make([]string, len(chunks))
		for idx, c := range chunks {
			texts[idx] = c.Text
		}
		vecs, err := i.Client.EmbedTexts(ctx, texts)
		if err != nil {
			log.Error(err, "skipping file after embedding failure", "path", p)
			continue
		}
		if len(vecs) != len(chunks) {
			log.Info("embedding count mismatch, skipping file", "path", p, "want", len(chunks), "got", len(vecs))
			continue
		}

		docType := classifyDocType(p)
		rows := make([]*db.KnowledgeChunk, 0, len(chunks))
		for idx, c := range chunks {
			id := sha256Hex(src.Name + ":" + p + ":" + tree.rev + ":" + strconv.Itoa(idx) + ":" + c.Text)
			rows = append(rows, &db.KnowledgeChunk{
				ID:             id,
				Source:         src.Name,
				Path:           p,
				Revision:       tree.rev,
				DocType:        docType,
				ChunkIndex:     idx,
				ChunkText:      c.Text,
				Section:        strptr(c.Section),
				Page:           intptr(c.Page),
				Embedding:      pgvector.NewVector(vecs[idx]),
				EmbeddingModel: i.ModelName,
				SourceURL:      strptr(tree.info.BlobURL(tree.rev, p)),
			})
			stats.ObserveChunk(c.Text)
		}
		if err := writer.Add(ctx, rows); err != nil {
			return fmt.Errorf("store chunks for %s: %w", p, err)
		}
		stats.ObserveFile()
	}

	if err := writer.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	sum := stats.Summary()
	log.Info("source ingested",
		"files", sum.Files,
		"chunks", sum.Chunks,
		"oversized", sum.Oversized,
		"median_tokens", sum.MedianTokens,
		"max_tokens", sum.MaxTokens)
	return nil
}

func (i *Ingester) materialize(ctx context.Context, src ingestion.Source) (*sourceTree, error) {
	if src.URL != "" {
		return i.materializeRepo(ctx, src)
	}
	return materializeDir(src.Path)
}

func (i *Ingester) materializeRepo(ctx context.Context, src ingestion.Source) (*sourceTree, error) {
	info, err := ingestion.ResolveRepo(ctx, i.GitHub, src.URL)
	if err != nil {
		return nil, err
	}

	localPath := filepath.Join(i.CacheDir, src.Name)
	repo := gitrepo.New(gitrepo.RepoConfig{URL: src.URL, Path: localPath})
	if _, err := repo.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("ensure repository: %w", err)
	}
	rev, err := repo.HeadSHA(ctx)
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}
	files, err := repo.ListFiles(ctx, rev)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return &sourceTree{
		rev:   rev,
		files: files,
		read: func(path string) ([]byte, error) {
			return repo.ShowFile(ctx, rev, path)
		},
		info: info,
	}, nil
}

func materializeDir(root string) (*sourceTree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return &sourceTree{
		rev:   "local",
		files: files,
		read: func(path string) ([]byte, error) {
			return os.ReadFile(filepath.Join(abs, filepath.FromSlash(path)))
		},
	}, nil
}

func globsToRegexp(globs []string) *regexp.Regexp {
	if len(globs) == 0 {
		return nil
	}
	var parts []string
	for _, g := range globs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		// Convert glob to regex:
		// **/ → (.*/)? (zero or more directories)
		// ** → .* (any characters)
		// * → [^/]* (any characters except /)
		r := regexp.QuoteMeta(g)
		r = strings.ReplaceAll(r, "\\*\\*/", "(.*/)?")
		r = strings.ReplaceAll(r, "\\*\\*", ".*")
		r = strings.ReplaceAll(r, "\\*", "[^/]*")
		parts = append(parts, "^"+r+"$")
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}

func filterFiles(files []string, include, exclude *regexp.Regexp, max int) []string {
	var out []string
	for _, f := range files {
		if include != nil && !include.MatchString(f) {
			continue
		}
		if exclude != nil && exclude.MatchString(f) {
			continue
		}
		out = append(out, f)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

func classifyDocType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".mdx", ".markdown":
		return "markdown"
	default:
		return "plain"
	}
}

func sha256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intptr(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

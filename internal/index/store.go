// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists ingested chunks with their embedding vectors
// in SQLite and serves nearest-neighbour queries over them. Scoring is
// brute-force cosine similarity, which is plenty for the few thousand
// chunks an internal document set produces.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/handover-engine/internal/llm"
	"github.com/pdiddy/handover-engine/pkg/types"
)

const dbFile = "handover.db"

// Store manages the vector index database.
type Store struct {
	db       *sql.DB
	embedder llm.Embedder
	topK     int
}

// NewStore opens or creates the index database at indexDir/handover.db
// and creates the schema if it does not exist. The embedder is used to
// embed query strings; it must match the model the index was built with.
func NewStore(cfg types.RetrievalConfig, embedder llm.Embedder) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = 10
	}

	s := &Store{db: db, embedder: embedder, topK: topK}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS chunks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			source TEXT NOT NULL,
			year INTEGER,
			doc_type TEXT,
			page INTEGER,
			embedding TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ReplaceSource removes any existing chunks for the given source and
// inserts the new ones with their vectors. chunks and vectors must be
// the same length. Re-ingesting a file is therefore idempotent.
func (s *Store) ReplaceSource(ctx context.Context, source string, chunks []types.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("replacing %s: %d chunks but %d vectors", source, len(chunks), len(vectors))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE source = ?`, source); err != nil {
		return fmt.Errorf("deleting chunks for %s: %w", source, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (content, source, year, doc_type, page, embedding) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		emb, err := json.Marshal(vectors[i])
		if err != nil {
			return fmt.Errorf("marshaling embedding: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			c.Content, c.Metadata.Source, c.Metadata.Year, c.Metadata.DocumentType, c.Metadata.Page, string(emb),
		); err != nil {
			return fmt.Errorf("inserting chunk %d of %s: %w", i, source, err)
		}
	}

	return tx.Commit()
}

// Search embeds the query and returns the k nearest chunks, closest
// first. When k is zero the store's configured top-k is used.
func (s *Store) Search(ctx context.Context, query string, k int) ([]types.Chunk, error) {
	scored, err := s.SearchWithScore(ctx, query, k)
	if err != nil {
		return nil, err
	}
	chunks := make([]types.Chunk, len(scored))
	for i, sc := range scored {
		chunks[i] = sc.Chunk
	}
	return chunks, nil
}

// SearchWithScore is Search with cosine similarity scores attached.
// Scores are in [-1, 1]; higher is closer.
func (s *Store) SearchWithScore(ctx context.Context, query string, k int) ([]types.ScoredChunk, error) {
	if k <= 0 {
		k = s.topK
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT content, source, year, doc_type, page, embedding FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var scored []types.ScoredChunk
	for rows.Next() {
		var (
			c       types.Chunk
			year    sql.NullInt64
			docType sql.NullString
			page    sql.NullInt64
			embJSON string
		)
		if err := rows.Scan(&c.Content, &c.Metadata.Source, &year, &docType, &page, &embJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		if year.Valid {
			c.Metadata.Year = int(year.Int64)
		}
		if docType.Valid {
			c.Metadata.DocumentType = docType.String
		}
		if page.Valid {
			c.Metadata.Page = int(page.Int64)
		}

		var vec []float32
		if err := json.Unmarshal([]byte(embJSON), &vec); err != nil {
			return nil, fmt.Errorf("unmarshaling embedding for %s: %w", c.Metadata.Source, err)
		}

		scored = append(scored, types.ScoredChunk{Chunk: c, Score: cosine(queryVec, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk rows: %w", err)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Count returns the number of indexed chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// SourceCount reports how many chunks one source document contributed.
type SourceCount struct {
	Source string
	Chunks int
}

// Sources returns per-source chunk counts ordered by source name.
func (s *Store) Sources(ctx context.Context) ([]SourceCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM chunks GROUP BY source ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var counts []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Chunks); err != nil {
			return nil, fmt.Errorf("scanning source row: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

// cosine returns the cosine similarity of two vectors. Mismatched or
// zero-magnitude vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

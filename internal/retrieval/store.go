// Package retrieval provides the recipe vector store and embedding cache
// used to ground dish ideas in a real recipe corpus.
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/team4/foodflow/internal/types"
)

// EmbeddingDim matches the Gemini text-embedding-004 output size.
const EmbeddingDim = 768

// RecipeStore persists recipe documents and their embeddings in PostgreSQL.
type RecipeStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*RecipeStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &RecipeStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *RecipeStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the pgvector extension and the recipes table.
func (s *RecipeStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS recipes (
			id BIGSERIAL PRIMARY KEY,
			source_key TEXT UNIQUE NOT NULL,
			title TEXT NOT NULL,
			payload JSONB NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, EmbeddingDim),
		`CREATE INDEX IF NOT EXISTS recipes_embedding_idx
			ON recipes USING hnsw (embedding vector_cosine_ops)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Upsert stores one recipe with its embedding. The source key deduplicates
// re-uploads of the same corpus row.
func (s *RecipeStore) Upsert(ctx context.Context, sourceKey string, recipe types.StoredRecipe, embedding []float32) error {
	if len(embedding) != EmbeddingDim {
		return fmt.Errorf("embedding has %d dimensions, want %d", len(embedding), EmbeddingDim)
	}

	payload, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe payload: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO recipes (source_key, title, payload, embedding)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (source_key) DO UPDATE SET title = $2, payload = $3, embedding = $4`,
		sourceKey, recipe.Title, payload, pgvector.NewVector(embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert recipe %q: %w", recipe.Title, err)
	}
	return nil
}

// Count returns the number of stored recipes.
func (s *RecipeStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return count, nil
}

// Contains reports whether a source key was already uploaded.
func (s *RecipeStore) Contains(ctx context.Context, sourceKey string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM recipes WHERE source_key = $1)`, sourceKey,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check source key: %w", err)
	}
	return exists, nil
}

// QuerySimilar returns the closest recipes by cosine similarity, best first.
// Scores are cosine similarities rounded to four decimals.
func (s *RecipeStore) QuerySimilar(ctx context.Context, embedding []float32, limit int) ([]types.RetrievedRecipe, error) {
	if limit <= 0 {
		limit = 1
	}

	rows, err := s.pool.Query(ctx,
		`SELECT payload, 1 - (embedding <=> $1) AS score
		 FROM recipes
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgvector.NewVector(embedding), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar recipes: %w", err)
	}
	defer rows.Close()

	var hits []types.RetrievedRecipe
	for rows.Next() {
		var payload []byte
		var score float64
		if err := rows.Scan(&payload, &score); err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}

		var recipe types.StoredRecipe
		if err := json.Unmarshal(payload, &recipe); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe payload: %w", err)
		}
		hits = append(hits, types.RetrievedRecipe{
			Score:  math.Round(score*10000) / 10000,
			Recipe: recipe,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe rows: %w", err)
	}
	return hits, nil
}

// GetByTitle returns a stored recipe by exact title, or nil when absent.
func (s *RecipeStore) GetByTitle(ctx context.Context, title string) (*types.StoredRecipe, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM recipes WHERE title = $1 LIMIT 1`, title,
	).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe %q: %w", title, err)
	}

	var recipe types.StoredRecipe
	if err := json.Unmarshal(payload, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe payload: %w", err)
	}
	return &recipe, nil
}

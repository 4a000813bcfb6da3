package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// embeddingTTL keeps cached embeddings for a week; the corpus text that maps
// to them does not change between runs.
const embeddingTTL = 7 * 24 * time.Hour

// EmbeddingCache memoizes embedding vectors in Redis so repeated uploads and
// queries for the same text do not hit the embedding API again.
// A nil client disables the cache: every lookup is a miss and writes are no-ops.
type EmbeddingCache struct {
	client *redis.Client
}

// NewEmbeddingCache creates a cache backed by the Redis instance at addr.
// An empty addr returns a disabled cache.
func NewEmbeddingCache(addr string) *EmbeddingCache {
	if addr == "" {
		return &EmbeddingCache{}
	}
	return &EmbeddingCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Get returns the cached embedding for text, or false on a miss.
func (c *EmbeddingCache) Get(ctx context.Context, text string) ([]float32, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, cacheKey(text)).Bytes()
	if err != nil {
		return nil, false
	}

	var embedding []float32
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, false
	}
	return embedding, true
}

// Set stores the embedding for text. Write failures are swallowed.
func (c *EmbeddingCache) Set(ctx context.Context, text string, embedding []float32) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(embedding)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, cacheKey(text), data, embeddingTTL).Err()
}

// Close releases the underlying Redis connection.
func (c *EmbeddingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("foodflow:embedding:%s", hex.EncodeToString(sum[:]))
}

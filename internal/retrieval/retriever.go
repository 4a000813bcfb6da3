package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/team4/foodflow/internal/types"
)

// minDocumentLen filters out corpus rows too short to embed usefully.
const minDocumentLen = 10

// Embedder turns text into an embedding vector.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Retriever combines the vector store, the embedding cache and the embedding
// API into the corpus interface the recipe agent uses.
type Retriever struct {
	store    *RecipeStore
	cache    *EmbeddingCache
	embedder Embedder
}

// NewRetriever wires a retriever. The cache may be nil.
func NewRetriever(store *RecipeStore, cache *EmbeddingCache, embedder Embedder) *Retriever {
	return &Retriever{store: store, cache: cache, embedder: embedder}
}

// Search embeds the query and returns the closest corpus recipes, best first.
func (r *Retriever) Search(ctx context.Context, query string, limit int) ([]types.RetrievedRecipe, error) {
	embedding, err := r.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return r.store.QuerySimilar(ctx, embedding, limit)
}

// Upload embeds and stores a batch of corpus recipes. Rows whose document is
// too short and rows already uploaded under the same file key are skipped.
// It returns how many recipes were actually written.
func (r *Retriever) Upload(ctx context.Context, fileKey string, recipes []types.StoredRecipe) (int, error) {
	uploaded := 0
	for i, recipe := range recipes {
		doc := BuildDocument(recipe)
		if len(doc) < minDocumentLen {
			continue
		}

		sourceKey := fmt.Sprintf("%s::%d", fileKey, i)
		exists, err := r.store.Contains(ctx, sourceKey)
		if err != nil {
			return uploaded, err
		}
		if exists {
			continue
		}

		embedding, err := r.embed(ctx, doc)
		if err != nil {
			return uploaded, fmt.Errorf("failed to embed recipe %q: %w", recipe.Title, err)
		}
		if err := r.store.Upsert(ctx, sourceKey, recipe, embedding); err != nil {
			return uploaded, err
		}
		uploaded++
	}
	return uploaded, nil
}

func (r *Retriever) embed(ctx context.Context, text string) ([]float32, error) {
	if embedding, ok := r.cache.Get(ctx, text); ok {
		return embedding, nil
	}

	embedding, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, text, embedding)
	return embedding, nil
}

// BuildDocument renders one recipe as the text that gets embedded.
func BuildDocument(recipe types.StoredRecipe) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(recipe.Title))
	if recipe.Cuisine != "" {
		b.WriteString(fmt.Sprintf(" (%s)", recipe.Cuisine))
	}
	if len(recipe.Ingredients) > 0 {
		b.WriteString(". Ingredients: ")
		b.WriteString(strings.Join(recipe.Ingredients, ", "))
	}
	if instructions := strings.TrimSpace(recipe.Instructions); instructions != "" {
		b.WriteString(". Instructions: ")
		b.WriteString(instructions)
	}
	return strings.TrimSpace(b.String())
}

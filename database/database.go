package database

import (
	"context"

	"github.com/coursehub/ai-service/types"
)

// Embedder turns text into fixed-length vectors. Implemented by the AI
// providers in service/.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// VectorStore is the durable chunk index. Add embeds and appends, Search
// returns up to k chunks by ascending distance (empty when no index exists),
// DeleteWhere drops every entry whose metadata matches the predicate and
// rebuilds the index from what remains.
type VectorStore interface {
	Exists() bool
	Add(ctx context.Context, texts []string, metadatas []map[string]string) error
	Search(ctx context.Context, query string, k int) ([]types.ScoredChunk, error)
	DeleteWhere(pred func(metadata map[string]string) bool) error
	Status() types.IndexStatus
}

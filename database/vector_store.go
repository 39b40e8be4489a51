package database

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/coursehub/ai-service/types"
)

// FlatIndexStore is a file-backed vector store with brute-force cosine
// search. Deletion is scan-and-rebuild: the underlying flat layout has no
// native delete. A single mutex serializes every index mutation so concurrent
// add/delete cannot race the on-disk files.
type FlatIndexStore struct {
	dir      string
	embedder Embedder
	mu       sync.Mutex
}

func NewFlatIndexStore(dir string, embedder Embedder) *FlatIndexStore {
	return &FlatIndexStore{
		dir:      dir,
		embedder: embedder,
	}
}

func (s *FlatIndexStore) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexExists(s.dir)
}

// Add embeds the texts and appends them to the index, creating it if absent.
// Embedding happens before the lock is taken; the remote call is the slow
// part and does not touch the files.
func (s *FlatIndexStore) Add(ctx context.Context, texts []string, metadatas []map[string]string) error {
	if len(texts) == 0 {
		return nil
	}
	if len(metadatas) != len(texts) {
		return fmt.Errorf("texts/metadatas length mismatch: %d vs %d", len(texts), len(metadatas))
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %d texts: %w", len(texts), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := &flatIndex{}
	if indexExists(s.dir) {
		existing, err := loadIndex(s.dir)
		if err != nil {
			return err
		}
		idx = existing
	}

	for i := range texts {
		idx.Vectors = append(idx.Vectors, vectors[i])
		idx.Docs = append(idx.Docs, docEntry{Content: texts[i], Metadata: metadatas[i]})
	}

	if err := saveIndex(s.dir, idx); err != nil {
		return err
	}
	log.Printf("Saved %d vectors to index (total %d)", len(texts), len(idx.Vectors))
	return nil
}

// Search returns up to k chunks ordered by ascending cosine distance. A
// missing index yields an empty result, not an error.
func (s *FlatIndexStore) Search(ctx context.Context, query string, k int) ([]types.ScoredChunk, error) {
	if k <= 0 {
		k = 5
	}

	s.mu.Lock()
	if !indexExists(s.dir) {
		s.mu.Unlock()
		return nil, nil
	}
	idx, err := loadIndex(s.dir)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results := make([]types.ScoredChunk, 0, len(idx.Docs))
	for i, vec := range idx.Vectors {
		results = append(results, types.ScoredChunk{
			Content:  idx.Docs[i].Content,
			Metadata: idx.Docs[i].Metadata,
			Distance: cosineDistance(queryVec, vec),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// DeleteWhere partitions the stored entries by the metadata predicate and
// rebuilds the index from the kept set. Removing the last entry deletes the
// index files entirely. A missing index or a predicate that matches nothing
// both count as success.
func (s *FlatIndexStore) DeleteWhere(pred func(metadata map[string]string) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !indexExists(s.dir) {
		return nil
	}
	idx, err := loadIndex(s.dir)
	if err != nil {
		return err
	}

	kept := &flatIndex{}
	removed := 0
	for i, doc := range idx.Docs {
		if pred(doc.Metadata) {
			removed++
			continue
		}
		kept.Vectors = append(kept.Vectors, idx.Vectors[i])
		kept.Docs = append(kept.Docs, doc)
	}

	if removed == 0 {
		log.Println("DeleteWhere matched no entries")
		return nil
	}
	if len(kept.Docs) == 0 {
		if err := removeIndex(s.dir); err != nil {
			return err
		}
		log.Printf("Cleared index (deleted %d vectors)", removed)
		return nil
	}
	if err := saveIndex(s.dir, kept); err != nil {
		return err
	}
	log.Printf("Deleted %d vectors, rebuilt index with %d remaining", removed, len(kept.Docs))
	return nil
}

func (s *FlatIndexStore) Status() types.IndexStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := types.IndexStatus{IndexPath: indexPath(s.dir)}
	info, err := os.Stat(indexPath(s.dir))
	if err != nil {
		return status
	}
	status.IndexExists = true
	status.IndexSizeMB = math.Round(float64(info.Size())/(1024*1024)*100) / 100
	status.LastModified = info.ModTime().Format(time.RFC3339)
	return status
}

func cosineDistance(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(normA)*math.Sqrt(normB)))
}

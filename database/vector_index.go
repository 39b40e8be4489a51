package database

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coursehub/ai-service/types"
)

const (
	indexFileName    = "index.gob"
	docstoreFileName = "docstore.json"
)

// docEntry pairs a chunk's text with its metadata. Its position in the
// docstore matches the position of its vector in the index file.
type docEntry struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// flatIndex is the in-memory form of the persisted index: a vector file and a
// document-store file, always loaded and saved as a unit.
type flatIndex struct {
	Vectors [][]float32
	Docs    []docEntry
}

func indexPath(dir string) string    { return filepath.Join(dir, indexFileName) }
func docstorePath(dir string) string { return filepath.Join(dir, docstoreFileName) }

func indexExists(dir string) bool {
	_, err := os.Stat(indexPath(dir))
	return err == nil
}

func loadIndex(dir string) (*flatIndex, error) {
	f, err := os.Open(indexPath(dir))
	if err != nil {
		return nil, fmt.Errorf("%w: opening index file: %v", types.ErrTransient, err)
	}
	defer f.Close()

	var idx flatIndex
	if err := gob.NewDecoder(f).Decode(&idx.Vectors); err != nil {
		return nil, fmt.Errorf("%w: decoding index file: %v", types.ErrTransient, err)
	}

	raw, err := os.ReadFile(docstorePath(dir))
	if err != nil {
		return nil, fmt.Errorf("%w: reading docstore file: %v", types.ErrTransient, err)
	}
	if err := json.Unmarshal(raw, &idx.Docs); err != nil {
		return nil, fmt.Errorf("%w: decoding docstore file: %v", types.ErrTransient, err)
	}

	if len(idx.Vectors) != len(idx.Docs) {
		return nil, fmt.Errorf("%w: index/docstore mismatch: %d vectors, %d documents",
			types.ErrTransient, len(idx.Vectors), len(idx.Docs))
	}
	return &idx, nil
}

func saveIndex(dir string, idx *flatIndex) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating index directory: %v", types.ErrTransient, err)
	}

	f, err := os.Create(indexPath(dir))
	if err != nil {
		return fmt.Errorf("%w: creating index file: %v", types.ErrTransient, err)
	}
	if err := gob.NewEncoder(f).Encode(idx.Vectors); err != nil {
		f.Close()
		return fmt.Errorf("%w: encoding index file: %v", types.ErrTransient, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing index file: %v", types.ErrTransient, err)
	}

	raw, err := json.Marshal(idx.Docs)
	if err != nil {
		return fmt.Errorf("%w: encoding docstore: %v", types.ErrTransient, err)
	}
	if err := os.WriteFile(docstorePath(dir), raw, 0644); err != nil {
		return fmt.Errorf("%w: writing docstore file: %v", types.ErrTransient, err)
	}
	return nil
}

func removeIndex(dir string) error {
	for _, p := range []string{indexPath(dir), docstorePath(dir)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: removing %s: %v", types.ErrTransient, p, err)
		}
	}
	return nil
}

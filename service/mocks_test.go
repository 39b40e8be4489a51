package service

import (
	"context"
	"fmt"

	"github.com/coursehub/ai-service/types"
)

// In-memory fakes for the repository and store interfaces, keyed the same
// way the Mongo implementations are.

type fakeFileRepo struct {
	files   map[string]*types.FileRecord // by file_id
	nextID  int
	updates int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[string]*types.FileRecord{}}
}

func (r *fakeFileRepo) CreateFile(ctx context.Context, file *types.FileRecord) error {
	if file.ID == "" {
		r.nextID++
		file.ID = fmt.Sprintf("oid-%d", r.nextID)
	}
	if file.FileID == "" {
		file.FileID = file.ID
	}
	clone := *file
	r.files[file.FileID] = &clone
	return nil
}

func (r *fakeFileRepo) GetFileByFileID(ctx context.Context, fileID string) (*types.FileRecord, error) {
	if file, ok := r.files[fileID]; ok {
		clone := *file
		return &clone, nil
	}
	return nil, fmt.Errorf("%w: file %s", types.ErrNotFound, fileID)
}

func (r *fakeFileRepo) GetFileByURLHash(ctx context.Context, urlHash string) (*types.FileRecord, error) {
	for _, file := range r.files {
		if file.URLHash == urlHash {
			clone := *file
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("%w: url hash %s", types.ErrNotFound, urlHash)
}

func (r *fakeFileRepo) ListFiles(ctx context.Context, userID string) ([]types.FileRecord, error) {
	var out []types.FileRecord
	for _, file := range r.files {
		if userID == "" || file.UserID == userID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) ListUnprocessedFiles(ctx context.Context) ([]types.FileRecord, error) {
	var out []types.FileRecord
	for _, file := range r.files {
		if !file.Embedded {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) UpdateFile(ctx context.Context, fileID string, filename, downloadURL, urlHash, contentType string, size int64) error {
	file, ok := r.files[fileID]
	if !ok {
		return fmt.Errorf("%w: file %s", types.ErrNotFound, fileID)
	}
	file.Filename = filename
	file.DownloadURL = downloadURL
	file.URLHash = urlHash
	file.ContentType = contentType
	file.Size = size
	r.updates++
	return nil
}

func (r *fakeFileRepo) MarkEmbedded(ctx context.Context, fileID string, processedDate string) error {
	file, ok := r.files[fileID]
	if !ok {
		return fmt.Errorf("%w: file %s", types.ErrNotFound, fileID)
	}
	file.Embedded = true
	file.ProcessedDate = processedDate
	return nil
}

func (r *fakeFileRepo) DeleteFile(ctx context.Context, fileID string) error {
	if _, ok := r.files[fileID]; !ok {
		return fmt.Errorf("%w: file %s", types.ErrNotFound, fileID)
	}
	delete(r.files, fileID)
	return nil
}

type fakeProcessedRepo struct {
	markers map[string]*types.ProcessedFile // by url_hash
}

func newFakeProcessedRepo() *fakeProcessedRepo {
	return &fakeProcessedRepo{markers: map[string]*types.ProcessedFile{}}
}

func (r *fakeProcessedRepo) GetByURLHash(ctx context.Context, urlHash string) (*types.ProcessedFile, error) {
	if marker, ok := r.markers[urlHash]; ok {
		clone := *marker
		return &clone, nil
	}
	return nil, fmt.Errorf("%w: marker %s", types.ErrNotFound, urlHash)
}

func (r *fakeProcessedRepo) Upsert(ctx context.Context, marker *types.ProcessedFile) error {
	clone := *marker
	r.markers[marker.URLHash] = &clone
	return nil
}

func (r *fakeProcessedRepo) DeleteByURLHash(ctx context.Context, urlHash string) error {
	delete(r.markers, urlHash)
	return nil
}

func (r *fakeProcessedRepo) DeleteByFileID(ctx context.Context, fileID string) error {
	for hash, marker := range r.markers {
		if marker.FileID == fileID {
			delete(r.markers, hash)
		}
	}
	return nil
}

// fakeVectorStore records entries in memory and never embeds anything.
type fakeVectorStore struct {
	entries  []fakeEntry
	searches []string
}

type fakeEntry struct {
	content  string
	metadata map[string]string
}

func (s *fakeVectorStore) Exists() bool { return len(s.entries) > 0 }

func (s *fakeVectorStore) Add(ctx context.Context, texts []string, metadatas []map[string]string) error {
	if len(texts) != len(metadatas) {
		return fmt.Errorf("texts/metadatas length mismatch")
	}
	for i := range texts {
		s.entries = append(s.entries, fakeEntry{content: texts[i], metadata: metadatas[i]})
	}
	return nil
}

func (s *fakeVectorStore) Search(ctx context.Context, query string, k int) ([]types.ScoredChunk, error) {
	s.searches = append(s.searches, query)
	out := make([]types.ScoredChunk, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, types.ScoredChunk{Content: e.content, Metadata: e.metadata})
	}
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (s *fakeVectorStore) DeleteWhere(pred func(metadata map[string]string) bool) error {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !pred(e.metadata) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

func (s *fakeVectorStore) Status() types.IndexStatus {
	return types.IndexStatus{IndexExists: len(s.entries) > 0}
}

func (s *fakeVectorStore) countWhere(pred func(metadata map[string]string) bool) int {
	n := 0
	for _, e := range s.entries {
		if pred(e.metadata) {
			n++
		}
	}
	return n
}

// fakeProvider records prompts and returns a canned response.
type fakeProvider struct {
	response     string
	err          error
	calls        int
	lastTemp     float32
	lastRendered string
}

func (p *fakeProvider) GenerateResponse(ctx context.Context, promptTemplate string, variables map[string]string, temperature float32) (string, error) {
	p.calls++
	p.lastTemp = temperature
	p.lastRendered = renderPrompt(promptTemplate, variables)
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *fakeProvider) ModelName() string { return "fake-model" }

type fakeConvRepo struct {
	saved []types.Conversation
}

func (r *fakeConvRepo) CreateConversation(ctx context.Context, conv *types.Conversation) error {
	r.saved = append(r.saved, *conv)
	return nil
}

func (r *fakeConvRepo) ListConversations(ctx context.Context, userID string, page, limit int64) ([]types.Conversation, int64, error) {
	return r.saved, int64(len(r.saved)), nil
}

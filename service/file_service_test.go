package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/ai-service/types"
	"github.com/coursehub/ai-service/utils"
)

func newTestFileService(t *testing.T) (*FileService, *fakeFileRepo, *fakeProcessedRepo, *fakeVectorStore) {
	t.Helper()
	fileRepo := newFakeFileRepo()
	processedRepo := newFakeProcessedRepo()
	store := &fakeVectorStore{}
	svc := NewFileService(fileRepo, processedRepo, store,
		NewPDFService(time.Second), NewChunker(ProfileDefault))
	return svc, fileRepo, processedRepo, store
}

func TestRegisterFiles(t *testing.T) {
	svc, fileRepo, _, _ := newTestFileService(t)

	records, err := svc.RegisterFiles(context.Background(), []types.FileMetadata{
		{Filename: "a.pdf", DownloadURL: "http://files/a.pdf", UserID: "u1"},
		{Filename: "b.pdf", DownloadURL: "http://files/b.pdf", UserID: "u2", ContentType: "application/pdf"},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.NotEmpty(t, records[0].FileID)
	assert.Equal(t, utils.URLHash("http://files/a.pdf"), records[0].URLHash)
	assert.Equal(t, "application/pdf", records[0].ContentType)
	assert.False(t, records[0].Embedded)
	assert.Len(t, fileRepo.files, 2)
}

func TestRegisterFilesKnownContentMarkedEmbedded(t *testing.T) {
	svc, _, processedRepo, _ := newTestFileService(t)

	urlHash := utils.URLHash("http://files/known.pdf")
	require.NoError(t, processedRepo.Upsert(context.Background(), &types.ProcessedFile{
		URLHash:       urlHash,
		FileID:        "old-file",
		ProcessedDate: "2026-01-01 00:00:00",
	}))

	records, err := svc.RegisterFiles(context.Background(), []types.FileMetadata{
		{Filename: "known.pdf", DownloadURL: "http://files/known.pdf"},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Embedded)
	assert.Equal(t, "2026-01-01 00:00:00", records[0].ProcessedDate)
}

func TestDeleteFileRemovesRecordMarkerAndVectors(t *testing.T) {
	svc, fileRepo, processedRepo, store := newTestFileService(t)
	ctx := context.Background()

	urlHash := utils.URLHash("http://files/a.pdf")
	require.NoError(t, fileRepo.CreateFile(ctx, &types.FileRecord{
		FileID: "f1", Filename: "a.pdf", DownloadURL: "http://files/a.pdf", URLHash: urlHash,
	}))
	require.NoError(t, processedRepo.Upsert(ctx, &types.ProcessedFile{URLHash: urlHash, FileID: "f1"}))
	require.NoError(t, store.Add(ctx,
		[]string{"chunk one", "chunk two", "other file"},
		[]map[string]string{
			{types.MetaFileID: "f1"},
			{types.MetaFileID: "f1"},
			{types.MetaFileID: "f2"},
		}))

	require.NoError(t, svc.DeleteFile(ctx, "f1"))

	assert.Empty(t, fileRepo.files)
	assert.Empty(t, processedRepo.markers)
	assert.Equal(t, 0, store.countWhere(func(m map[string]string) bool { return m[types.MetaFileID] == "f1" }))
	assert.Equal(t, 1, store.countWhere(func(m map[string]string) bool { return m[types.MetaFileID] == "f2" }))
}

func TestDeleteFileNotFound(t *testing.T) {
	svc, _, _, _ := newTestFileService(t)
	err := svc.DeleteFile(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestProcessUnprocessedFilesSkipsKnownContent(t *testing.T) {
	svc, fileRepo, processedRepo, store := newTestFileService(t)
	ctx := context.Background()

	urlHash := utils.URLHash("http://files/a.pdf")
	require.NoError(t, fileRepo.CreateFile(ctx, &types.FileRecord{
		FileID: "f1", Filename: "a.pdf", DownloadURL: "http://files/a.pdf", URLHash: urlHash,
	}))
	require.NoError(t, processedRepo.Upsert(ctx, &types.ProcessedFile{URLHash: urlHash, FileID: "old"}))

	count, err := svc.ProcessUnprocessedFiles(ctx)
	require.NoError(t, err)
	// known content is re-flagged, not re-embedded, and not counted
	assert.Equal(t, 0, count)
	assert.True(t, fileRepo.files["f1"].Embedded)
	assert.Empty(t, store.entries)
}

func TestProcessUnprocessedFilesEmpty(t *testing.T) {
	svc, _, _, _ := newTestFileService(t)
	count, err := svc.ProcessUnprocessedFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestProcessUnprocessedFilesSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, fileRepo, _, _ := newTestFileService(t)
	ctx := context.Background()
	require.NoError(t, fileRepo.CreateFile(ctx, &types.FileRecord{
		FileID: "f1", Filename: "a.pdf", DownloadURL: server.URL + "/a.pdf",
		URLHash: utils.URLHash(server.URL + "/a.pdf"),
	}))

	// the download fails, the file stays unprocessed and the call succeeds
	count, err := svc.ProcessUnprocessedFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.False(t, fileRepo.files["f1"].Embedded)
}

func TestProcessFileBadPDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a pdf at all"))
	}))
	defer server.Close()

	svc, _, processedRepo, store := newTestFileService(t)
	err := svc.ProcessFile(context.Background(), &types.FileRecord{
		FileID: "f1", Filename: "a.pdf", DownloadURL: server.URL + "/a.pdf",
	})
	require.Error(t, err)
	assert.Empty(t, store.entries)
	assert.Empty(t, processedRepo.markers)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/coursehub/ai-service/database"
	"github.com/coursehub/ai-service/repository"
	"github.com/coursehub/ai-service/types"
	"github.com/coursehub/ai-service/utils"
)

const timeLayout = "2006-01-02 15:04:05"

// FileService manages the lifecycle of registered PDF files: registration,
// listing, deletion, and embedding of files not yet processed.
type FileService struct {
	fileRepo      repository.FileRepo
	processedRepo repository.ProcessedFileRepo
	store         database.VectorStore
	pdfService    *PDFService
	chunker       *Chunker
}

func NewFileService(
	fileRepo repository.FileRepo,
	processedRepo repository.ProcessedFileRepo,
	store database.VectorStore,
	pdfService *PDFService,
	chunker *Chunker,
) *FileService {
	return &FileService{
		fileRepo:      fileRepo,
		processedRepo: processedRepo,
		store:         store,
		pdfService:    pdfService,
		chunker:       chunker,
	}
}

// RegisterFiles creates a record per file. The embedded flag is seeded from
// an existing processed marker so re-registering known content does not queue
// it for re-embedding.
func (s *FileService) RegisterFiles(ctx context.Context, files []types.FileMetadata) ([]types.FileRecord, error) {
	records := make([]types.FileRecord, 0, len(files))
	for _, meta := range files {
		urlHash := utils.URLHash(meta.DownloadURL)

		record := types.FileRecord{
			Filename:    meta.Filename,
			DownloadURL: meta.DownloadURL,
			URLHash:     urlHash,
			UserID:      meta.UserID,
			Size:        meta.Size,
			ContentType: meta.ContentType,
			UploadDate:  time.Now().Format(timeLayout),
		}
		if record.ContentType == "" {
			record.ContentType = "application/pdf"
		}

		marker, err := s.processedRepo.GetByURLHash(ctx, urlHash)
		if err == nil {
			record.Embedded = true
			record.ProcessedDate = marker.ProcessedDate
		} else if !errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("checking processed marker: %w", err)
		}

		if err := s.fileRepo.CreateFile(ctx, &record); err != nil {
			return nil, fmt.Errorf("registering file %s: %w", meta.Filename, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *FileService) ListFiles(ctx context.Context, userID string) ([]types.FileRecord, error) {
	return s.fileRepo.ListFiles(ctx, userID)
}

// DeleteFile removes the record, its processed marker, and every vector whose
// metadata references the file. Each step is delete-if-exists except the
// record itself, which reports not-found to the HTTP caller.
func (s *FileService) DeleteFile(ctx context.Context, fileID string) error {
	file, err := s.fileRepo.GetFileByFileID(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.fileRepo.DeleteFile(ctx, fileID); err != nil {
		return err
	}
	if err := s.processedRepo.DeleteByURLHash(ctx, file.URLHash); err != nil {
		log.Printf("Error deleting processed marker for file %s: %v", fileID, err)
	}
	if err := s.store.DeleteWhere(func(metadata map[string]string) bool {
		return metadata[types.MetaFileID] == fileID
	}); err != nil {
		return fmt.Errorf("deleting vectors for file %s: %w", fileID, err)
	}
	return nil
}

// ProcessUnprocessedFiles embeds every registered file whose embedded flag is
// still false. Files whose content hash already carries a processed marker
// are only re-flagged, not re-embedded, so calling this twice with the same
// URL processes zero files the second time.
func (s *FileService) ProcessUnprocessedFiles(ctx context.Context) (int, error) {
	files, err := s.fileRepo.ListUnprocessedFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing unprocessed files: %w", err)
	}
	if len(files) == 0 {
		log.Println("No files to process")
		return 0, nil
	}

	processed := 0
	for _, file := range files {
		if _, err := s.processedRepo.GetByURLHash(ctx, file.URLHash); err == nil {
			log.Printf("File %s content already embedded, marking without re-processing", file.FileID)
			if err := s.fileRepo.MarkEmbedded(ctx, file.FileID, time.Now().Format(timeLayout)); err != nil {
				log.Printf("Error marking file %s embedded: %v", file.FileID, err)
			}
			continue
		}

		if err := s.ProcessFile(ctx, &file); err != nil {
			log.Printf("Error processing file %s: %v", file.FileID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// ProcessFile downloads, extracts, chunks, and embeds a single file, then
// marks the record embedded and writes the processed marker. The embedded
// flag only flips after the index save succeeded.
func (s *FileService) ProcessFile(ctx context.Context, file *types.FileRecord) error {
	data, err := s.pdfService.Fetch(ctx, file.DownloadURL)
	if err != nil {
		return err
	}

	text, err := s.pdfService.ExtractText(data)
	if err != nil {
		return fmt.Errorf("extracting text from %s: %w", file.Filename, err)
	}
	if text == "" {
		log.Printf("File %s has no usable text, skipping ingestion", file.FileID)
		return nil
	}

	chunks := s.chunker.Split(text)
	now := time.Now().Format(timeLayout)
	metadatas := make([]map[string]string, len(chunks))
	for i := range chunks {
		metadatas[i] = map[string]string{
			types.MetaFileID:     file.FileID,
			types.MetaURLHash:    file.URLHash,
			types.MetaChunkIndex: strconv.Itoa(i),
			types.MetaCreatedAt:  now,
		}
	}

	if err := s.store.Add(ctx, chunks, metadatas); err != nil {
		return fmt.Errorf("embedding file %s: %w", file.FileID, err)
	}

	if err := s.fileRepo.MarkEmbedded(ctx, file.FileID, now); err != nil {
		return fmt.Errorf("marking file %s embedded: %w", file.FileID, err)
	}
	if err := s.processedRepo.Upsert(ctx, &types.ProcessedFile{
		URLHash:       file.URLHash,
		FileID:        file.FileID,
		ProcessedDate: now,
	}); err != nil {
		return fmt.Errorf("recording processed marker for file %s: %w", file.FileID, err)
	}
	log.Printf("Processed file %s into %d chunks", file.FileID, len(chunks))
	return nil
}

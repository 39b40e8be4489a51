package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/coursehub/ai-service/database"
	"github.com/coursehub/ai-service/repository"
	"github.com/coursehub/ai-service/types"
	"github.com/coursehub/ai-service/utils"
)

// FileEventService applies file lifecycle events from the file-updates
// stream. Delivery is at-least-once, so every handler tolerates a repeat of
// the same event.
type FileEventService struct {
	fileRepo      repository.FileRepo
	processedRepo repository.ProcessedFileRepo
	store         database.VectorStore
	fileService   *FileService
}

func NewFileEventService(
	fileRepo repository.FileRepo,
	processedRepo repository.ProcessedFileRepo,
	store database.VectorStore,
	fileService *FileService,
) *FileEventService {
	return &FileEventService{
		fileRepo:      fileRepo,
		processedRepo: processedRepo,
		store:         store,
		fileService:   fileService,
	}
}

func (s *FileEventService) HandleFileEvent(ctx context.Context, event types.FileUpdateEvent) error {
	log.Printf("Processing %s event for file %s: %s", event.Action, event.FileID, event.Filename)

	switch event.Action {
	case types.ActionCreate:
		return s.handleCreate(ctx, event)
	case types.ActionUpdate:
		return s.handleUpdate(ctx, event)
	case types.ActionDelete:
		return s.handleDelete(ctx, event)
	default:
		return fmt.Errorf("unknown file action: %s", event.Action)
	}
}

func (s *FileEventService) handleCreate(ctx context.Context, event types.FileUpdateEvent) error {
	urlHash := utils.URLHash(event.DownloadURL)

	// Check-before-insert keeps duplicate CREATE deliveries from producing a
	// second record or a second embedding pass.
	if _, err := s.fileRepo.GetFileByURLHash(ctx, urlHash); err == nil {
		log.Printf("File %s already registered, skipping creation", event.FileID)
		return nil
	} else if !errors.Is(err, types.ErrNotFound) {
		return err
	}

	record := types.FileRecord{
		FileID:      event.FileID,
		Filename:    event.Filename,
		DownloadURL: event.DownloadURL,
		URLHash:     urlHash,
		UserID:      event.UserID,
		Size:        event.Size,
		ContentType: event.ContentType,
		UploadDate:  time.Now().Format(timeLayout),
	}
	if record.ContentType == "" {
		record.ContentType = "application/pdf"
	}
	if err := s.fileRepo.CreateFile(ctx, &record); err != nil {
		return fmt.Errorf("creating file record %s: %w", event.FileID, err)
	}

	return s.fileService.ProcessFile(ctx, &record)
}

func (s *FileEventService) handleUpdate(ctx context.Context, event types.FileUpdateEvent) error {
	urlHash := utils.URLHash(event.DownloadURL)

	err := s.fileRepo.UpdateFile(ctx, event.FileID, event.Filename, event.DownloadURL, urlHash, event.ContentType, event.Size)
	if errors.Is(err, types.ErrNotFound) {
		// UPDATE for a file we never saw: treat as CREATE so the index
		// converges regardless of delivery order.
		log.Printf("File %s not found during update, handling as create", event.FileID)
		return s.handleCreate(ctx, event)
	}
	if err != nil {
		return fmt.Errorf("updating file record %s: %w", event.FileID, err)
	}

	if err := s.store.DeleteWhere(func(metadata map[string]string) bool {
		return metadata[types.MetaFileID] == event.FileID
	}); err != nil {
		return fmt.Errorf("deleting old vectors for file %s: %w", event.FileID, err)
	}
	if err := s.processedRepo.DeleteByFileID(ctx, event.FileID); err != nil {
		return fmt.Errorf("clearing processed marker for file %s: %w", event.FileID, err)
	}

	record, err := s.fileRepo.GetFileByFileID(ctx, event.FileID)
	if err != nil {
		return err
	}
	record.URLHash = urlHash
	return s.fileService.ProcessFile(ctx, record)
}

func (s *FileEventService) handleDelete(ctx context.Context, event types.FileUpdateEvent) error {
	err := s.fileRepo.DeleteFile(ctx, event.FileID)
	if errors.Is(err, types.ErrNotFound) {
		log.Printf("File %s already deleted", event.FileID)
	} else if err != nil {
		return fmt.Errorf("deleting file record %s: %w", event.FileID, err)
	}

	if err := s.processedRepo.DeleteByFileID(ctx, event.FileID); err != nil {
		return fmt.Errorf("deleting processed marker for file %s: %w", event.FileID, err)
	}
	if err := s.store.DeleteWhere(func(metadata map[string]string) bool {
		return metadata[types.MetaFileID] == event.FileID
	}); err != nil {
		return fmt.Errorf("deleting vectors for file %s: %w", event.FileID, err)
	}
	return nil
}

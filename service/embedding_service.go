package service

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/coursehub/ai-service/database"
	"github.com/coursehub/ai-service/types"
)

// EmbeddingService keeps course embeddings in the vector store synchronized
// with the course catalog. Courses are embedded exclusively from event data so
// answers stay aligned with what the catalog actually published.
type EmbeddingService struct {
	store   database.VectorStore
	chunker *Chunker
}

func NewEmbeddingService(store database.VectorStore, chunker *Chunker) *EmbeddingService {
	return &EmbeddingService{
		store:   store,
		chunker: chunker,
	}
}

func (s *EmbeddingService) IngestCourse(ctx context.Context, event types.CourseUpdateEvent) error {
	courseText := buildCourseText(event)

	chunks := s.chunker.Split(courseText)
	if len(chunks) == 0 {
		return fmt.Errorf("no text chunks generated for course %d", event.CourseID)
	}

	courseID := strconv.FormatInt(event.CourseID, 10)
	courseUID := event.CourseUID
	if courseUID == "" {
		courseUID = courseID
	}
	topic := event.Topic
	if topic == "" {
		topic = "unknown"
	}

	metadatas := make([]map[string]string, len(chunks))
	for i := range chunks {
		metadatas[i] = map[string]string{
			types.MetaCourseID:   courseID,
			types.MetaCourseUID:  courseUID,
			types.MetaCourseName: event.CourseName,
			types.MetaTopic:      topic,
			types.MetaChunkIndex: strconv.Itoa(i),
		}
	}

	if err := s.store.Add(ctx, chunks, metadatas); err != nil {
		return fmt.Errorf("ingesting course %d: %w", event.CourseID, err)
	}
	log.Printf("Ingested course %d (%s) as %d chunks", event.CourseID, event.CourseName, len(chunks))
	return nil
}

// UpdateCourse deletes then re-ingests, which is also safe when the course
// was never ingested (delete of nothing succeeds).
func (s *EmbeddingService) UpdateCourse(ctx context.Context, event types.CourseUpdateEvent) error {
	if err := s.DeleteCourse(event.CourseID); err != nil {
		return err
	}
	return s.IngestCourse(ctx, event)
}

func (s *EmbeddingService) DeleteCourse(courseID int64) error {
	id := strconv.FormatInt(courseID, 10)
	if err := s.store.DeleteWhere(func(metadata map[string]string) bool {
		return metadata[types.MetaCourseID] == id
	}); err != nil {
		return fmt.Errorf("deleting course %d embeddings: %w", courseID, err)
	}
	return nil
}

func buildCourseText(event types.CourseUpdateEvent) string {
	text := "Course: " + event.CourseName + "\n"
	if event.Description != "" {
		text += "Description: " + event.Description
	} else {
		text += "Description: No description provided"
	}
	if event.Topic != "" {
		text += "\nTopic: " + event.Topic
	}
	return text
}

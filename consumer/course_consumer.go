package consumer

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/coursehub/ai-service/service"
	"github.com/coursehub/ai-service/types"
)

const (
	CourseStreamKey    = "course-updates"
	CourseGroup        = "ai-service-group"
	CourseConsumerName = "ai-service-consumer-1"
)

// NewCourseConsumer builds the consumer that keeps the vector index in
// sync with course catalog changes.
func NewCourseConsumer(redisURL string, embeddings *service.EmbeddingService) (*Consumer, error) {
	handler := func(ctx context.Context, msg redis.XMessage) error {
		event, err := decodeCourseEvent(msg)
		if err != nil {
			return err
		}
		log.Printf("course event %s: %s (course %d)", msg.ID, event.Action, event.CourseID)
		switch event.Action {
		case types.ActionCreate:
			return embeddings.IngestCourse(ctx, event)
		case types.ActionUpdate:
			return embeddings.UpdateCourse(ctx, event)
		case types.ActionDelete:
			return embeddings.DeleteCourse(event.CourseID)
		default:
			return fmt.Errorf("%w: unknown action %q", types.ErrParse, event.Action)
		}
	}
	return NewConsumer(redisURL, CourseStreamKey, CourseGroup, CourseConsumerName, handler)
}

func decodeCourseEvent(msg redis.XMessage) (types.CourseUpdateEvent, error) {
	event := types.CourseUpdateEvent{
		CourseUID:   fieldString(msg.Values, "courseUid"),
		CourseName:  fieldString(msg.Values, "courseName"),
		Description: fieldString(msg.Values, "courseDescription"),
		Topic:       fieldString(msg.Values, "topic"),
		Action:      types.EventAction(fieldString(msg.Values, "action")),
	}
	id, err := fieldInt64(msg.Values, "courseId")
	if err != nil {
		return event, fmt.Errorf("%w: message %s: %v", types.ErrParse, msg.ID, err)
	}
	event.CourseID = id
	event.Timestamp, _ = fieldInt64(msg.Values, "timestamp")

	if event.CourseName == "" {
		return event, fmt.Errorf("%w: message %s: missing courseName", types.ErrParse, msg.ID)
	}
	if event.Action == "" {
		return event, fmt.Errorf("%w: message %s: missing action", types.ErrParse, msg.ID)
	}
	return event, nil
}

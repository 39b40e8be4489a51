package consumer

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/coursehub/ai-service/service"
	"github.com/coursehub/ai-service/types"
)

const (
	FileStreamKey    = "file-updates"
	FileGroup        = "ai-service-group"
	FileConsumerName = "ai-service-file-consumer-1"
)

// NewFileConsumer builds the consumer that mirrors file lifecycle events
// into the file catalog and the vector index.
func NewFileConsumer(redisURL string, fileEvents *service.FileEventService) (*Consumer, error) {
	handler := func(ctx context.Context, msg redis.XMessage) error {
		event, err := decodeFileEvent(msg)
		if err != nil {
			return err
		}
		log.Printf("file event %s: %s (file %s)", msg.ID, event.Action, event.FileID)
		return fileEvents.HandleFileEvent(ctx, event)
	}
	return NewConsumer(redisURL, FileStreamKey, FileGroup, FileConsumerName, handler)
}

func decodeFileEvent(msg redis.XMessage) (types.FileUpdateEvent, error) {
	event := types.FileUpdateEvent{
		FileID:      fieldString(msg.Values, "fileId"),
		Filename:    fieldString(msg.Values, "filename"),
		DownloadURL: fieldString(msg.Values, "downloadUrl"),
		Action:      types.EventAction(fieldString(msg.Values, "action")),
		UserID:      fieldString(msg.Values, "userId"),
		ContentType: fieldString(msg.Values, "contentType"),
	}
	event.Size, _ = fieldInt64(msg.Values, "size")
	event.Timestamp, _ = fieldInt64(msg.Values, "timestamp")

	if event.FileID == "" {
		return event, fmt.Errorf("%w: message %s: missing fileId", types.ErrParse, msg.ID)
	}
	if event.Action == "" {
		return event, fmt.Errorf("%w: message %s: missing action", types.ErrParse, msg.ID)
	}
	if event.Action != types.ActionDelete && event.DownloadURL == "" {
		return event, fmt.Errorf("%w: message %s: missing downloadUrl", types.ErrParse, msg.ID)
	}
	return event, nil
}

func fieldString(values map[string]interface{}, key string) string {
	if v, ok := values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func fieldInt64(values map[string]interface{}, key string) (int64, error) {
	raw := fieldString(values, key)
	if raw == "" {
		return 0, fmt.Errorf("missing field %q", key)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q is not an integer: %v", key, err)
	}
	return n, nil
}

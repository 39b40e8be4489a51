package types

// EventAction is the lifecycle action carried by a stream message.
type EventAction string

const (
	ActionCreate EventAction = "CREATE"
	ActionUpdate EventAction = "UPDATE"
	ActionDelete EventAction = "DELETE"
)

// CourseUpdateEvent is a course catalog change published on the
// course-updates stream.
type CourseUpdateEvent struct {
	CourseID    int64       `json:"courseId"`
	CourseUID   string      `json:"courseUid,omitempty"`
	CourseName  string      `json:"courseName"`
	Description string      `json:"courseDescription,omitempty"`
	Topic       string      `json:"topic,omitempty"`
	Action      EventAction `json:"action"`
	Timestamp   int64       `json:"timestamp"`
}

// FileUpdateEvent is a file change published on the file-updates stream.
type FileUpdateEvent struct {
	FileID      string      `json:"fileId"`
	Filename    string      `json:"filename"`
	DownloadURL string      `json:"downloadUrl"`
	Action      EventAction `json:"action"`
	UserID      string      `json:"userId,omitempty"`
	Size        int64       `json:"size,omitempty"`
	ContentType string      `json:"contentType,omitempty"`
	Timestamp   int64       `json:"timestamp"`
}

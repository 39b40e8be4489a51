package types

type ChatRequest struct {
	Question    string `json:"question"`
	QuestionUID string `json:"question_uid"`
}

type FreeChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

type LearningPathRequest struct {
	Topics    string `json:"topics"`
	Level     string `json:"level,omitempty"`
	Questions string `json:"questions"`
}

// FileMetadata is the registration payload for a single file.
type FileMetadata struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	UserID      string `json:"user_id,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ChatResponse struct {
	Answer      string `json:"answer"`
	QuestionUID string `json:"question_uid"`
	Timestamp   string `json:"timestamp"`
	ModelName   string `json:"model_name"`
}

// CourseRecommendation is one entry of a generated learning path.
type CourseRecommendation struct {
	CourseName  string `json:"course_name"`
	CourseUID   string `json:"course_uid"`
	Description string `json:"description"`
}

type LearningPathResponse struct {
	Advice                   string                 `json:"advice"`
	RecommendedLearningPaths []CourseRecommendation `json:"recommendedLearningPaths"`
	Explanation              string                 `json:"explanation"`
}

type ProcessFilesResponse struct {
	ProcessedCount int    `json:"processed_count"`
	Message        string `json:"message,omitempty"`
}

type ConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
	TotalCount    int64          `json:"total_count"`
}

// ConsumerStatus reports the state of one stream consumer.
type ConsumerStatus struct {
	IsRunning     bool   `json:"is_running"`
	IsConnected   bool   `json:"is_connected"`
	StreamKey     string `json:"stream_key"`
	ConsumerGroup string `json:"consumer_group"`
	ConsumerName  string `json:"consumer_name"`
}

// IndexStatus reports the on-disk vector index state.
type IndexStatus struct {
	IndexExists  bool    `json:"index_exists"`
	IndexPath    string  `json:"index_path"`
	IndexSizeMB  float64 `json:"index_size_mb,omitempty"`
	LastModified string  `json:"last_modified,omitempty"`
}

type HealthResponse struct {
	Status        string           `json:"status"`
	RedisConsumer []ConsumerStatus `json:"redis_consumer"`
	VectorIndex   IndexStatus      `json:"vector_index"`
}

package types

// FileRecord tracks a registered PDF file and its embedding status.
type FileRecord struct {
	ID            string `bson:"_id,omitempty" json:"id"`
	FileID        string `bson:"file_id" json:"file_id"`
	Filename      string `bson:"filename" json:"filename"`
	DownloadURL   string `bson:"download_url" json:"download_url"`
	URLHash       string `bson:"url_hash" json:"url_hash"`
	UserID        string `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Size          int64  `bson:"size,omitempty" json:"size,omitempty"`
	ContentType   string `bson:"content_type" json:"content_type"`
	UploadDate    string `bson:"upload_date" json:"upload_date"`
	Embedded      bool   `bson:"embedding_created" json:"embedding_created"`
	ProcessedDate string `bson:"processed_date,omitempty" json:"processed_date,omitempty"`
}

// ProcessedFile marks a content hash as already embedded so the same URL is
// never ingested twice. url_hash carries a unique index.
type ProcessedFile struct {
	URLHash       string `bson:"url_hash" json:"url_hash"`
	FileID        string `bson:"file_id" json:"file_id"`
	ProcessedDate string `bson:"processed_date" json:"processed_date"`
}

// Conversation is a stored question/answer exchange.
type Conversation struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	UserID    string `bson:"user_id" json:"user_id"`
	Question  string `bson:"question" json:"question"`
	Answer    string `bson:"answer" json:"answer"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}

// ScoredChunk is a chunk returned from a similarity search, ordered by
// ascending distance.
type ScoredChunk struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Distance float32           `json:"distance"`
}

// Metadata keys used in the vector index. The external identifier carried by
// the originating event or record (course_id / file_id) is authoritative for
// metadata-scoped deletion.
const (
	MetaCourseID   = "course_id"
	MetaCourseUID  = "course_uid"
	MetaCourseName = "course_name"
	MetaTopic      = "topic"
	MetaFileID     = "file_id"
	MetaURLHash    = "url_hash"
	MetaChunkIndex = "chunk_index"
	MetaCreatedAt  = "created_at"
)

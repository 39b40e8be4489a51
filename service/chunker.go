package service

// ChunkProfile selects chunk length and overlap for one embedding model
// family. Google AI embeddings take much larger inputs than the typical
// sentence-transformer models, so they get bigger chunks.
type ChunkProfile struct {
	Name         string
	ChunkSize    int
	ChunkOverlap int
}

var (
	ProfileGoogleAI = ChunkProfile{Name: "google-ai", ChunkSize: 10000, ChunkOverlap: 1000}
	ProfileDefault  = ChunkProfile{Name: "default", ChunkSize: 1000, ChunkOverlap: 100}
)

// ProfileByName falls back to the default profile for unknown names.
func ProfileByName(name string) ChunkProfile {
	if name == ProfileGoogleAI.Name {
		return ProfileGoogleAI
	}
	return ProfileDefault
}

// Chunker splits text into overlapping fixed-size segments.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(profile ChunkProfile) *Chunker {
	size := profile.ChunkSize
	if size <= 0 {
		size = ProfileDefault.ChunkSize
	}
	overlap := profile.ChunkOverlap
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split produces ordered overlapping chunks. Chunk i+1 starts overlap runes
// before chunk i ends, so dropping the first overlap runes of every chunk but
// the first and concatenating reconstructs the input. Empty input yields nil;
// the caller skips ingestion.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}
	}

	step := c.size - c.overlap
	var chunks []string
	for pos := 0; pos < len(runes); pos += step {
		end := pos + c.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[pos:]))
			break
		}
		chunks = append(chunks, string(runes[pos:end]))
	}
	return chunks
}

// Size and Overlap expose the effective configuration.
func (c *Chunker) Size() int    { return c.size }
func (c *Chunker) Overlap() int { return c.overlap }

package models

// Chunk represents a contiguous piece of extracted document text.
// Chunks are ordered by their position in the source document.
type Chunk struct {
	Content    string
	PageNumber int
	ChunkID    int
}

// Upload carries the raw bytes of one uploaded file together with its
// declared filename. It lives for the duration of a single request.
type Upload struct {
	Filename string
	Data     []byte
}

// QAResult pairs one input question with the answer generated for it.
type QAResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ErrorResponse is the wire envelope for failed requests.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

package embedding

import (
	"crypto/sha256"
	"encoding/hex"
)

// Document is a stored embedding with a denormalized copy of the text it was built from,
// so vector hits never need a join back to the source table.
type Document struct {
	DocumentID    string
	DocumentTitle string
	DocumentType  string
	Department    string
	ContentText   string
	ContentHash   string
	Embedding     []float32
}

// Match is a stored embedding returned by a similarity query.
type Match struct {
	DocumentID    string
	DocumentTitle string
	DocumentType  string
	Department    string
	ContentText   string
	Similarity    float64
}

// Stats aggregates the embeddings store.
type Stats struct {
	Total        int            `json:"total"`
	ByType       map[string]int `json:"byType"`
	ByDepartment map[string]int `json:"byDepartment"`
}

// HashText fingerprints the embedded text so stale embeddings can be detected.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

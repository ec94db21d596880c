package result

import (
	"math"
	"strings"

	"github.com/2025DataEdu/project-5/internal/domain/identity"
)

// Document types. Vector hits keep the type of the row they were embedded from.
const (
	TypeRegistry = "결재문서"
	TypePDF      = "PDF문서"
	TypeEmployee = "직원정보"
)

// Provenance labels.
const (
	SourceInternal = "내부문서"
	SourcePDF      = "PDF문서"
	SourceVector   = "벡터검색"
)

const (
	// UnclassifiedDepartment is used when a row has no owning department.
	UnclassifiedDepartment = "미분류"
	// UntitledDocument is used when a row has no title at all.
	UntitledDocument = "제목 없음"
	// NoResourceURL marks a result without a viewable file.
	NoResourceURL = "#"
	// DateLayout is the format of LastModified.
	DateLayout = "2006-01-02"
)

// Result is the uniform projection every search path produces.
type Result struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Source       string   `json:"source"`
	Department   string   `json:"department"`
	LastModified string   `json:"lastModified"`
	FileName     string   `json:"fileName"`
	Type         string   `json:"type"`
	URL          string   `json:"url"`
	Similarity   *float64 `json:"similarity,omitempty"`
}

// DedupKey identifies the logical document: title, department and type, case-insensitive.
func (r *Result) DedupKey() string {
	return strings.ToLower(identity.NormalizeTitle(r.Title) + "|" + r.Department + "|" + r.Type)
}

// HasSimilarity reports whether the result came from vector search.
func (r *Result) HasSimilarity() bool { return r.Similarity != nil }

// RoundSimilarity rounds s to two decimals without dropping below threshold.
// A score that passed the threshold filter stays within [threshold, 1].
func RoundSimilarity(s, threshold float64) float64 {
	r := math.Round(s*100) / 100
	if r < threshold {
		r = math.Ceil(s*100) / 100
	}
	return math.Min(r, 1)
}

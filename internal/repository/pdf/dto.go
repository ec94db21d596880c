package pdf

import (
	"time"

	"github.com/2025DataEdu/project-5/internal/domain/source"
)

// StatusActive marks a PDF document that is searchable.
const StatusActive = "active"

// Model is the pdf_documents table.
type Model struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Title       *string   `gorm:"column:title"`
	ContentText *string   `gorm:"column:content_text"`
	Department  *string   `gorm:"column:department"`
	FileName    string    `gorm:"column:file_name;not null"`
	FilePath    string    `gorm:"column:file_path;not null;default:''"`
	FileURL     *string   `gorm:"column:file_url"`
	FileSize    *int64    `gorm:"column:file_size"`
	PageCount   *int      `gorm:"column:page_count"`
	Status      *string   `gorm:"column:status;default:active"`
	UploadDate  time.Time `gorm:"column:upload_date;not null"`
}

// TableName implements gorm's tabler.
func (Model) TableName() string { return "pdf_documents" }

func (m *Model) toDomain() source.PDF {
	return source.PDF{
		ID:          m.ID,
		Title:       deref(m.Title),
		ContentText: deref(m.ContentText),
		Department:  deref(m.Department),
		FileName:    m.FileName,
		FileURL:     deref(m.FileURL),
		Status:      deref(m.Status),
		UploadDate:  m.UploadDate,
	}
}

func toDomain(rows []Model) []source.PDF {
	out := make([]source.PDF, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

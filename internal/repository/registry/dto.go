package registry

import "github.com/2025DataEdu/project-5/internal/domain/source"

// Model is the 결재문서목록 table. Columns keep their hosted Korean names.
type Model struct {
	ID         int64   `gorm:"column:id;primaryKey;autoIncrement:false"`
	Title      *string `gorm:"column:제목"`
	Department *string `gorm:"column:전체부서명"`
	CreatedAt  *string `gorm:"column:생성일자"`
	Visibility *string `gorm:"column:공개여부"`
}

// TableName implements gorm's tabler.
func (Model) TableName() string { return "결재문서목록" }

func (m *Model) toDomain() source.Registry {
	return source.Registry{
		ID:         m.ID,
		Title:      deref(m.Title),
		Department: deref(m.Department),
		CreatedAt:  deref(m.CreatedAt),
		Visibility: deref(m.Visibility),
	}
}

func toDomain(rows []Model) []source.Registry {
	out := make([]source.Registry, len(rows))
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

package employee

import "github.com/2025DataEdu/project-5/internal/domain/source"

// Model is the 직원정보 table.
type Model struct {
	ID         int64   `gorm:"column:id;primaryKey;autoIncrement:false"`
	Duty       *string `gorm:"column:담당업무"`
	Department *string `gorm:"column:부서명"`
	Position   *string `gorm:"column:직책"`
	Phone      *string `gorm:"column:전화번호"`
	Fax        *string `gorm:"column:팩스번호"`
}

// TableName implements gorm's tabler.
func (Model) TableName() string { return "직원정보" }

func toDomain(rows []Model) []source.Employee {
	out := make([]source.Employee, len(rows))
	for i, m := range rows {
		out[i] = source.Employee{
			ID:         m.ID,
			Duty:       deref(m.Duty),
			Department: deref(m.Department),
			Position:   deref(m.Position),
			Phone:      deref(m.Phone),
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

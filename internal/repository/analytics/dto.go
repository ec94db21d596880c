package analytics

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/2025DataEdu/project-5/internal/domain/analytics"
)

// SearchLogModel is the search_logs table.
type SearchLogModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Query        string    `gorm:"column:query;not null"`
	ResultsCount int       `gorm:"column:results_count"`
	UserSession  string    `gorm:"column:user_session"`
	SearchDate   time.Time `gorm:"column:search_date;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (SearchLogModel) TableName() string { return "search_logs" }

// BeforeCreate assigns a uuid primary key.
func (m *SearchLogModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// DocumentViewModel is the document_views table.
type DocumentViewModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	DocumentID    string    `gorm:"column:document_id;not null"`
	DocumentType  string    `gorm:"column:document_type;not null"`
	DocumentTitle string    `gorm:"column:document_title"`
	Department    string    `gorm:"column:department"`
	UserSession   string    `gorm:"column:user_session"`
	SearchQuery   string    `gorm:"column:search_query"`
	ViewDate      time.Time `gorm:"column:view_date;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName implements gorm's tabler.
func (DocumentViewModel) TableName() string { return "document_views" }

// BeforeCreate assigns a uuid primary key.
func (m *DocumentViewModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// PopularStatModel is the popular_statistics table.
type PopularStatModel struct {
	ID               string     `gorm:"column:id;primaryKey"`
	DocumentID       string     `gorm:"column:document_id;not null;uniqueIndex:popular_statistics_document_idx"`
	DocumentType     string     `gorm:"column:document_type;not null;uniqueIndex:popular_statistics_document_idx"`
	DocumentTitle    string     `gorm:"column:document_title"`
	Department       string     `gorm:"column:department"`
	ViewCount        int        `gorm:"column:view_count"`
	WeeklyViews      int        `gorm:"column:weekly_views"`
	MonthlyViews     int        `gorm:"column:monthly_views"`
	WeeklyGrowthRate float64    `gorm:"column:weekly_growth_rate"`
	RankPosition     int        `gorm:"column:rank_position"`
	LastViewed       *time.Time `gorm:"column:last_viewed"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

// TableName implements gorm's tabler.
func (PopularStatModel) TableName() string { return "popular_statistics" }

// BeforeCreate assigns a uuid primary key.
func (m *PopularStatModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *PopularStatModel) toDomain() domain.PopularStat {
	return domain.PopularStat{
		DocumentID:       m.DocumentID,
		DocumentType:     m.DocumentType,
		DocumentTitle:    m.DocumentTitle,
		Department:       m.Department,
		ViewCount:        m.ViewCount,
		WeeklyViews:      m.WeeklyViews,
		MonthlyViews:     m.MonthlyViews,
		WeeklyGrowthRate: m.WeeklyGrowthRate,
		RankPosition:     m.RankPosition,
		LastViewed:       m.LastViewed,
	}
}

func popularFromDomain(s domain.PopularStat) PopularStatModel {
	return PopularStatModel{
		DocumentID:       s.DocumentID,
		DocumentType:     s.DocumentType,
		DocumentTitle:    s.DocumentTitle,
		Department:       s.Department,
		ViewCount:        s.ViewCount,
		WeeklyViews:      s.WeeklyViews,
		MonthlyViews:     s.MonthlyViews,
		WeeklyGrowthRate: s.WeeklyGrowthRate,
		RankPosition:     s.RankPosition,
		LastViewed:       s.LastViewed,
	}
}

// Models lists the analytics tables for migration.
func Models() []any {
	return []any{&SearchLogModel{}, &DocumentViewModel{}, &PopularStatModel{}}
}

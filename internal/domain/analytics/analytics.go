package analytics

import (
	"fmt"
	"time"
)

// AllDepartments disables the department filter of popular statistics.
const AllDepartments = "전체"

// SearchLog is one recorded search.
type SearchLog struct {
	Query        string
	ResultsCount int
	SessionID    string
	SearchedAt   time.Time
}

// DocumentView is one recorded open of a search result.
type DocumentView struct {
	DocumentID    string    `json:"documentId"`
	DocumentType  string    `json:"documentType"`
	DocumentTitle string    `json:"documentTitle"`
	Department    string    `json:"department"`
	SearchQuery   string    `json:"searchQuery,omitempty"`
	SessionID     string    `json:"-"`
	ViewedAt      time.Time `json:"-"`
}

// PopularStat is the aggregated view statistics of one document.
type PopularStat struct {
	DocumentID       string
	DocumentType     string
	DocumentTitle    string
	Department       string
	ViewCount        int
	WeeklyViews      int
	MonthlyViews     int
	WeeklyGrowthRate float64
	RankPosition     int
	LastViewed       *time.Time
}

// PopularEntry is a ranked popular document as presented to clients.
type PopularEntry struct {
	Rank         int     `json:"rank"`
	Title        string  `json:"title"`
	Department   string  `json:"department"`
	ViewCount    int     `json:"viewCount"`
	WeeklyGrowth float64 `json:"weeklyGrowth"`
	Type         string  `json:"type"`
	LastViewed   string  `json:"lastViewed"`
}

// FormatLastViewed renders how long ago a document was last viewed.
func FormatLastViewed(last *time.Time, now time.Time) string {
	if last == nil {
		return "기록 없음"
	}
	hours := int(now.Sub(*last).Hours())
	switch {
	case hours < 1:
		return "1시간 이내"
	case hours < 24:
		return fmt.Sprintf("%d시간 전", hours)
	case hours < 168:
		return fmt.Sprintf("%d일 전", hours/24)
	default:
		return "1주일 이상"
	}
}

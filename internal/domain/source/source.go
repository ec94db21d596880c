// Package source defines the rows of the three searchable data sources
// and how each one projects into the uniform search result.
package source

import (
	"strconv"
	"strings"
	"time"

	"github.com/2025DataEdu/project-5/internal/domain/identity"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
)

// Row is one of Registry, PDF or Employee.
type Row interface {
	identity.Keyed
	// Result maps the row into the uniform shape; now supplies missing dates.
	Result(now time.Time) result.Result
	sealed()
}

var (
	_ Row = Registry{}
	_ Row = PDF{}
	_ Row = Employee{}
)

// Registry is a row of the approval document registry (결재문서목록).
type Registry struct {
	ID         int64
	Title      string
	Department string
	CreatedAt  string
	Visibility string
}

func (Registry) sealed() {}

// PrimaryKey implements identity.Keyed.
func (r Registry) PrimaryKey() string {
	if r.ID == 0 {
		return ""
	}
	return strconv.FormatInt(r.ID, 10)
}

// TitleHint implements identity.Keyed.
func (r Registry) TitleHint() string { return r.Title }

// DepartmentHint implements identity.Keyed.
func (r Registry) DepartmentHint() string { return r.Department }

// Result implements Row.
func (r Registry) Result(now time.Time) result.Result {
	return result.Result{
		ID:           identity.GenerateID(result.TypeRegistry, r),
		Title:        identity.NormalizeTitle(orDefault(r.Title, result.UntitledDocument)),
		Content:      r.Title + " - " + r.Department + "에서 작성된 결재문서입니다.",
		Source:       result.SourceInternal,
		Department:   orDefault(r.Department, result.UnclassifiedDepartment),
		LastModified: dateOnly(r.CreatedAt, now),
		FileName:     orDefault(r.Title, "document") + ".pdf",
		Type:         result.TypeRegistry,
		URL:          result.NoResourceURL,
	}
}

// EmbeddingText is the text embedded for vector search.
func (r Registry) EmbeddingText() string {
	return strings.TrimSpace(r.Title + " " + r.Department)
}

// PDF is an uploaded PDF document with its extracted text.
type PDF struct {
	ID          string
	Title       string
	ContentText string
	Department  string
	FileName    string
	FileURL     string
	Status      string
	UploadDate  time.Time
}

func (PDF) sealed() {}

// PrimaryKey implements identity.Keyed.
func (p PDF) PrimaryKey() string { return p.ID }

// TitleHint implements identity.Keyed.
func (p PDF) TitleHint() string { return p.Title }

// DepartmentHint implements identity.Keyed.
func (p PDF) DepartmentHint() string { return p.Department }

// DisplayTitle is the title, else the file name, else the untitled marker.
func (p PDF) DisplayTitle() string {
	return orDefault(orDefault(p.Title, p.FileName), result.UntitledDocument)
}

// Result implements Row.
func (p PDF) Result(now time.Time) result.Result {
	content := p.ContentText
	if content == "" {
		content = orDefault(p.Title, p.FileName) + "에 대한 PDF 문서입니다."
	}
	lastModified := now.Format(result.DateLayout)
	if !p.UploadDate.IsZero() {
		lastModified = p.UploadDate.Format(result.DateLayout)
	}
	return result.Result{
		ID:           identity.GenerateID(result.TypePDF, p),
		Title:        identity.NormalizeTitle(p.DisplayTitle()),
		Content:      content,
		Source:       result.SourcePDF,
		Department:   orDefault(p.Department, result.UnclassifiedDepartment),
		LastModified: lastModified,
		FileName:     orDefault(p.FileName, p.DisplayTitle()+".pdf"),
		Type:         result.TypePDF,
		URL:          orDefault(p.FileURL, result.NoResourceURL),
	}
}

// EmbeddingText is the text embedded for vector search.
func (p PDF) EmbeddingText() string {
	return strings.TrimSpace(p.Title + " " + p.ContentText + " " + p.Department)
}

// Employee is an entry of the employee directory (직원정보).
type Employee struct {
	ID         int64
	Duty       string
	Department string
	Position   string
	Phone      string
}

func (Employee) sealed() {}

// PrimaryKey implements identity.Keyed.
func (e Employee) PrimaryKey() string {
	if e.ID == 0 {
		return ""
	}
	return strconv.FormatInt(e.ID, 10)
}

// TitleHint implements identity.Keyed.
func (e Employee) TitleHint() string { return e.Duty }

// DepartmentHint implements identity.Keyed.
func (e Employee) DepartmentHint() string { return e.Department }

// Result implements Row.
func (e Employee) Result(now time.Time) result.Result {
	title := orDefault(e.Position, "직책미상") + " - " + orDefault(e.Duty, "업무미상")
	return result.Result{
		ID:    identity.GenerateID(result.TypeEmployee, e),
		Title: identity.NormalizeTitle(title),
		Content: e.Department + "에서 " + e.Duty + "를 담당하고 있습니다. 연락처: " +
			orDefault(e.Phone, "미등록"),
		Source:       result.SourceInternal,
		Department:   orDefault(e.Department, result.UnclassifiedDepartment),
		LastModified: now.Format(result.DateLayout),
		FileName:     "직원정보_" + orDefault(e.Position, "staff") + ".pdf",
		Type:         result.TypeEmployee,
		URL:          result.NoResourceURL,
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// dateOnly reduces a stored date or timestamp to YYYY-MM-DD, falling back to now.
func dateOnly(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(result.DateLayout) {
		if d, err := time.Parse(result.DateLayout, s[:len(result.DateLayout)]); err == nil {
			return d.Format(result.DateLayout)
		}
	}
	return now.Format(result.DateLayout)
}

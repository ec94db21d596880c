package source

import (
	"testing"
	"time"

	"github.com/2025DataEdu/project-5/internal/domain/search/result"
)

var now = time.Date(2025, 7, 1, 15, 4, 5, 0, time.UTC)

func TestRegistry_Result(t *testing.T) {
	r := Registry{ID: 7, Title: "  국내  출장 규정 ", Department: "총무과", CreatedAt: "2024-03-05T10:00:00"}
	got := r.Result(now)

	if got.ID != "결재문서-7" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.Title != "국내 출장 규정" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Type != result.TypeRegistry || got.Source != result.SourceInternal {
		t.Errorf("Type/Source = %q/%q", got.Type, got.Source)
	}
	if got.URL != result.NoResourceURL {
		t.Errorf("URL = %q", got.URL)
	}
	if got.LastModified != "2024-03-05" {
		t.Errorf("LastModified = %q", got.LastModified)
	}
	if got.Content != "  국내  출장 규정  - 총무과에서 작성된 결재문서입니다." {
		t.Errorf("Content = %q", got.Content)
	}
}

func TestRegistry_ResultDefaults(t *testing.T) {
	got := Registry{}.Result(now)

	if got.Department != result.UnclassifiedDepartment {
		t.Errorf("Department = %q", got.Department)
	}
	if got.Title != result.UntitledDocument {
		t.Errorf("Title = %q", got.Title)
	}
	if got.FileName != "document.pdf" {
		t.Errorf("FileName = %q", got.FileName)
	}
	if got.LastModified != "2025-07-01" {
		t.Errorf("LastModified = %q", got.LastModified)
	}
	if got.ID != "결재문서-untitled-unknown" {
		t.Errorf("ID = %q", got.ID)
	}
}

func TestPDF_Result(t *testing.T) {
	p := PDF{
		ID:         "3f0c",
		FileName:   "guide.pdf",
		FileURL:    "https://files.example.com/guide.pdf",
		UploadDate: time.Date(2025, 1, 2, 23, 0, 0, 0, time.UTC),
	}
	got := p.Result(now)

	if got.Title != "guide.pdf" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Content != "guide.pdf에 대한 PDF 문서입니다." {
		t.Errorf("Content = %q", got.Content)
	}
	if got.URL != p.FileURL {
		t.Errorf("URL = %q", got.URL)
	}
	if got.LastModified != "2025-01-02" {
		t.Errorf("LastModified = %q", got.LastModified)
	}
	if got.Department != result.UnclassifiedDepartment {
		t.Errorf("Department = %q", got.Department)
	}
	if got.ID != "PDF문서-3f0c" {
		t.Errorf("ID = %q", got.ID)
	}
}

func TestPDF_ResultNoFile(t *testing.T) {
	got := PDF{Title: "보안 지침", ContentText: "본문"}.Result(now)

	if got.FileName != "보안 지침.pdf" {
		t.Errorf("FileName = %q", got.FileName)
	}
	if got.URL != result.NoResourceURL {
		t.Errorf("URL = %q", got.URL)
	}
	if got.Content != "본문" {
		t.Errorf("Content = %q", got.Content)
	}
}

func TestEmployee_Result(t *testing.T) {
	e := Employee{ID: 11, Duty: "출장비 정산", Department: "재무팀", Position: "주무관", Phone: "02-123-4567"}
	got := e.Result(now)

	if got.Title != "주무관 - 출장비 정산" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Content != "재무팀에서 출장비 정산를 담당하고 있습니다. 연락처: 02-123-4567" {
		t.Errorf("Content = %q", got.Content)
	}
	if got.FileName != "직원정보_주무관.pdf" {
		t.Errorf("FileName = %q", got.FileName)
	}
	if got.Type != result.TypeEmployee {
		t.Errorf("Type = %q", got.Type)
	}
}

func TestEmployee_ResultDefaults(t *testing.T) {
	got := Employee{}.Result(now)

	if got.Title != "직책미상 - 업무미상" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.FileName != "직원정보_staff.pdf" {
		t.Errorf("FileName = %q", got.FileName)
	}
	if got.Department != result.UnclassifiedDepartment {
		t.Errorf("Department = %q", got.Department)
	}
}

func TestUniformShapeNeverEmpty(t *testing.T) {
	rows := []Row{Registry{}, PDF{}, Employee{}}
	for _, r := range rows {
		got := r.Result(now)
		if got.Department == "" || got.FileName == "" || got.URL == "" || got.LastModified == "" {
			t.Errorf("%T produced empty defaults: %+v", r, got)
		}
	}
}

func TestEmbeddingText(t *testing.T) {
	if got := (Registry{Title: "출장", Department: "총무과"}).EmbeddingText(); got != "출장 총무과" {
		t.Errorf("registry text = %q", got)
	}
	if got := (PDF{Title: "지침", ContentText: "본문"}).EmbeddingText(); got != "지침 본문" {
		t.Errorf("pdf text = %q", got)
	}
	if got := (Registry{}).EmbeddingText(); got != "" {
		t.Errorf("empty registry text = %q", got)
	}
}

package keyword

import (
	"context"

	"github.com/2025DataEdu/project-5/internal/domain"
	"github.com/2025DataEdu/project-5/internal/domain/search/result"
	"github.com/2025DataEdu/project-5/internal/domain/source"
)

// Adapter searches one data source and maps its rows into results.
type Adapter interface {
	Name() string
	Search(ctx context.Context, q string) ([]result.Result, error)
}

// RegistryStore reads the approval document registry.
type RegistryStore interface {
	Search(ctx context.Context, q string, limit int) ([]source.Registry, error)
	Recent(ctx context.Context, limit int) ([]source.Registry, error)
}

// PDFStore reads uploaded PDF documents.
type PDFStore interface {
	Search(ctx context.Context, q string, limit int) ([]source.PDF, error)
}

// EmployeeStore reads the employee directory.
type EmployeeStore interface {
	Search(ctx context.Context, q string, limit int) ([]source.Employee, error)
}

// SearchLogger records searches without blocking the caller.
type SearchLogger interface {
	LogSearch(session domain.Session, q string, resultsCount int)
}

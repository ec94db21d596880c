package indexing

import (
	"context"
	"strconv"

	"github.com/2025DataEdu/project-5/internal/domain/search/result"
)

// item is one source row prepared for embedding.
type item struct {
	id         string
	title      string
	department string
	text       string
}

// Source is a table whose rows get embedded.
type Source interface {
	DocumentType() string
	Count(ctx context.Context) (int, error)
	Page(ctx context.Context, offset, limit int) ([]item, error)
}

type registrySource struct{ pager RegistryPager }

// RegistrySource embeds approval documents as title plus department.
func RegistrySource(p RegistryPager) Source { return registrySource{pager: p} }

func (registrySource) DocumentType() string { return result.TypeRegistry }

func (s registrySource) Count(ctx context.Context) (int, error) { return s.pager.Count(ctx) }

func (s registrySource) Page(ctx context.Context, offset, limit int) ([]item, error) {
	rows, err := s.pager.Page(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]item, len(rows))
	for i, r := range rows {
		title := r.Title
		if title == "" {
			title = result.UntitledDocument
		}
		out[i] = item{
			id:         strconv.FormatInt(r.ID, 10),
			title:      title,
			department: r.Department,
			text:       r.EmbeddingText(),
		}
	}
	return out, nil
}

type pdfSource struct{ pager PDFPager }

// PDFSource embeds active PDFs as title, extracted text and department.
func PDFSource(p PDFPager) Source { return pdfSource{pager: p} }

func (pdfSource) DocumentType() string { return result.TypePDF }

func (s pdfSource) Count(ctx context.Context) (int, error) { return s.pager.CountActive(ctx) }

func (s pdfSource) Page(ctx context.Context, offset, limit int) ([]item, error) {
	rows, err := s.pager.PageActive(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]item, len(rows))
	for i, r := range rows {
		out[i] = item{
			id:         r.ID,
			title:      r.DisplayTitle(),
			department: r.Department,
			text:       r.EmbeddingText(),
		}
	}
	return out, nil
}

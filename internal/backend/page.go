package backend

import (
	"encoding/json"

	"github.com/netline-isp/isp-console/internal/shared"
)

// PageInfo is the pagination block of a paginated list response.
type PageInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// UnmarshalJSON accepts both the current envelope and the older
// {page, pages, total} shape some deployments still return.
func (p *PageInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		CurrentPage *int  `json:"currentPage"`
		Page        *int  `json:"page"`
		TotalPages  *int  `json:"totalPages"`
		Pages       *int  `json:"pages"`
		TotalCount  *int  `json:"totalCount"`
		Total       *int  `json:"total"`
		Limit       int   `json:"limit"`
		HasNextPage *bool `json:"hasNextPage"`
		HasPrevPage *bool `json:"hasPrevPage"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PageInfo{Limit: raw.Limit}
	p.CurrentPage = firstInt(raw.CurrentPage, raw.Page, 1)
	p.TotalCount = firstInt(raw.TotalCount, raw.Total, 0)
	p.TotalPages = firstInt(raw.TotalPages, raw.Pages, 0)
	if p.TotalPages == 0 && p.Limit > 0 {
		p.TotalPages = (p.TotalCount + p.Limit - 1) / p.Limit
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if raw.HasNextPage != nil {
		p.HasNextPage = *raw.HasNextPage
	} else {
		p.HasNextPage = p.CurrentPage < p.TotalPages
	}
	if raw.HasPrevPage != nil {
		p.HasPrevPage = *raw.HasPrevPage
	} else {
		p.HasPrevPage = p.CurrentPage > 1
	}
	return nil
}

// Pagination converts to the view-layer pagination.
func (p PageInfo) Pagination() shared.Pagination {
	perPage := p.Limit
	if perPage <= 0 {
		perPage = shared.DefaultPerPage
	}
	total := p.TotalCount
	if floor := (p.TotalPages - 1) * perPage; p.TotalPages > 1 && total <= floor {
		total = p.TotalPages * perPage
	}
	return shared.NewPagination(p.CurrentPage, perPage, total)
}

// Page is one page of a server-paginated resource.
type Page[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageInfo `json:"pagination"`
}

func firstInt(a, b *int, fallback int) int {
	if a != nil {
		return *a
	}
	if b != nil {
		return *b
	}
	return fallback
}

package shared

import (
	"math"
	"net/url"
	"strconv"
)

// DefaultPerPage is the page size used by every list screen.
const DefaultPerPage = 10

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// PageItem is one entry of a page-number bar. Ellipsis entries carry no number.
type PageItem struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// NewPagination computes pagination metadata. The page is clamped into range.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total < 0 {
		total = 0
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	if page <= 0 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset is the index of the first item on the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Prev returns the previous page number.
func (p Pagination) Prev() int {
	if p.HasPrev() {
		return p.Page - 1
	}
	return p.Page
}

// Next returns the next page number.
func (p Pagination) Next() int {
	if p.HasNext() {
		return p.Page + 1
	}
	return p.Page
}

// Items lays out the page bar: first page, the current page with one
// neighbour each side, last page, and an ellipsis across any gap.
func (p Pagination) Items() []PageItem {
	if p.TotalPages <= 1 {
		return []PageItem{{Number: 1, Current: true}}
	}
	items := []PageItem{{Number: 1, Current: p.Page == 1}}
	start := max(2, p.Page-1)
	end := min(p.TotalPages-1, p.Page+1)
	if start > 2 {
		items = append(items, PageItem{Ellipsis: true})
	}
	for n := start; n <= end; n++ {
		items = append(items, PageItem{Number: n, Current: n == p.Page})
	}
	if end < p.TotalPages-1 {
		items = append(items, PageItem{Ellipsis: true})
	}
	items = append(items, PageItem{Number: p.TotalPages, Current: p.Page == p.TotalPages})
	return items
}

// Paginate returns the slice of items visible on the current page.
func Paginate[T any](items []T, p Pagination) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := min(start+p.PerPage, len(items))
	return items[start:end]
}

// PageFromQuery reads a positive page number from the query string.
func PageFromQuery(q url.Values) int {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

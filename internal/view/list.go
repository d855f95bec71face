package view

import (
	"net/http"
	"slices"
	"time"

	"github.com/netline-isp/isp-console/internal/listing"
	"github.com/netline-isp/isp-console/internal/shared"
)

// ListState is what a list page needs to draw its toolbar, sortable headers
// and page bar.
type ListState struct {
	Path       string
	Query      listing.Query
	Pagination shared.Pagination
}

// NewListState reads search, filters, sort and page from r. Filter keys not
// present in the query default to "all".
func NewListState(r *http.Request, sortKeys []string, filters ...string) ListState {
	q := r.URL.Query()
	lq := listing.Query{
		Search:  q.Get("search"),
		Filters: map[string]string{},
		Sort:    listing.SortFromQuery(q, sortKeys...),
		Page:    shared.PageFromQuery(q),
	}
	for _, f := range filters {
		v := q.Get(f)
		if v == "" {
			v = "all"
		}
		lq.Filters[f] = v
	}
	return ListState{Path: r.URL.Path, Query: lq}
}

// Filter returns the value of a filter, "all" when unset.
func (s ListState) Filter(name string) string {
	if v, ok := s.Query.Filters[name]; ok && v != "" {
		return v
	}
	return "all"
}

// SortHref links to the list sorted by the toggled column.
func (s ListState) SortHref(key string) string {
	return s.Query.WithSort(key).Href(s.Path)
}

// PageHref links to page n keeping every other parameter.
func (s ListState) PageHref(n int) string {
	return s.Query.WithPage(n).Href(s.Path)
}

// Paginate clamps the page against total and stores the result.
func (s *ListState) Paginate(total int) shared.Pagination {
	s.Pagination = shared.NewPagination(s.Query.Page, shared.DefaultPerPage, total)
	s.Query.Page = s.Pagination.Page
	return s.Pagination
}

func sortLink(s ListState, key string) string { return s.SortHref(key) }

func pageItems(p shared.Pagination) []shared.PageItem { return p.Items() }

func displayDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(shared.DateLocation).Format(shared.DisplayDateLayout)
}

func hasRole(u *shared.CurrentUser, roles ...string) bool {
	return u != nil && slices.Contains(roles, u.Role)
}

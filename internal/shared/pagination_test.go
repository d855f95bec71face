package shared

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pageBar(p Pagination) []any {
	var out []any
	for _, item := range p.Items() {
		if item.Ellipsis {
			out = append(out, "...")
			continue
		}
		out = append(out, item.Number)
	}
	return out
}

func TestPaginationItems(t *testing.T) {
	cases := []struct {
		page, pages int
		want        []any
	}{
		{1, 1, []any{1}},
		{1, 2, []any{1, 2}},
		{1, 5, []any{1, 2, "...", 5}},
		{3, 5, []any{1, 2, 3, 4, 5}},
		{5, 10, []any{1, "...", 4, 5, 6, "...", 10}},
		{10, 10, []any{1, "...", 9, 10}},
	}
	for _, tc := range cases {
		p := NewPagination(tc.page, 10, tc.pages*10)
		assert.Equal(t, tc.want, pageBar(p), "page %d of %d", tc.page, tc.pages)
	}
}

func TestNewPaginationClampsPage(t *testing.T) {
	p := NewPagination(9, 10, 25)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, 3, p.Next())

	empty := NewPagination(0, 0, 0)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Equal(t, DefaultPerPage, empty.PerPage)
}

func TestPaginateSlices(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	assert.Equal(t, []int{11, 12}, Paginate(items, NewPagination(2, 10, len(items))))
	assert.Equal(t, []int{}, Paginate(items, Pagination{Page: 5, PerPage: 10}))
}

func TestPageFromQuery(t *testing.T) {
	assert.Equal(t, 1, PageFromQuery(url.Values{}))
	assert.Equal(t, 1, PageFromQuery(url.Values{"page": {"-2"}}))
	assert.Equal(t, 4, PageFromQuery(url.Values{"page": {"4"}}))
}

// Package listing holds the search, filter and column-sort rules shared by
// every list screen.
package listing

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active column sort. A zero Sort keeps the backend order.
type Sort struct {
	Key string
	Dir Direction
}

// SortFromQuery reads sort and dir, ignoring keys not in allowed.
func SortFromQuery(q url.Values, allowed ...string) Sort {
	key := q.Get("sort")
	if key == "" || !slices.Contains(allowed, key) {
		return Sort{}
	}
	dir := Asc
	if Direction(q.Get("dir")) == Desc {
		dir = Desc
	}
	return Sort{Key: key, Dir: dir}
}

// Toggle returns the sort a click on column key produces: ascending first,
// descending when the same column is already ascending.
func (s Sort) Toggle(key string) Sort {
	if s.Key == key && s.Dir == Asc {
		return Sort{Key: key, Dir: Desc}
	}
	return Sort{Key: key, Dir: Asc}
}

// Active reports whether key is the sorted column.
func (s Sort) Active(key string) bool {
	return s.Key != "" && s.Key == key
}

// Comparator orders two items by one column.
type Comparator[T any] func(a, b T) int

// Matches reports whether any field contains needle, ignoring case. An
// empty needle matches everything.
func Matches(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Filter returns the items keep accepts, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Apply sorts a copy of items by s using the column comparators. Unknown or
// empty keys return the copy unsorted. The sort is stable.
func Apply[T any](items []T, s Sort, columns map[string]Comparator[T]) []T {
	out := slices.Clone(items)
	cmpFn, ok := columns[s.Key]
	if !ok || cmpFn == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		c := cmpFn(a, b)
		if s.Dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Text compares strings ignoring case.
func Text(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Number compares numeric values.
func Number[N cmp.Ordered](a, b N) int {
	return cmp.Compare(a, b)
}

// Bool orders false before true.
func Bool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// Query is the list state carried in links: search text, filters, sort and page.
type Query struct {
	Search  string
	Filters map[string]string
	Sort    Sort
	Page    int
}

// Values encodes q for a link. Empty parts are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	for k, val := range q.Filters {
		if val != "" && val != "all" {
			v.Set(k, val)
		}
	}
	if q.Sort.Key != "" {
		v.Set("sort", q.Sort.Key)
		v.Set("dir", string(q.Sort.Dir))
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// WithPage returns q pointing at page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// WithSort returns q sorted by the toggled column. Sorting keeps the page.
func (q Query) WithSort(key string) Query {
	q.Sort = q.Sort.Toggle(key)
	return q
}

// Href renders path with q's query string.
func (q Query) Href(path string) string {
	enc := q.Values().Encode()
	if enc == "" {
		return path
	}
	return path + "?" + enc
}

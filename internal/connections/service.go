package connections

import "github.com/netline-isp/isp-console/internal/listing"

// SortKeys are the sortable columns.
var SortKeys = []string{"name"}

var columns = map[string]listing.Comparator[ConnectionType]{
	"name": func(a, b ConnectionType) int { return listing.Text(a.Name, b.Name) },
}

// Search filters by name or description and applies the sort.
func Search(items []ConnectionType, q string, sort listing.Sort) []ConnectionType {
	matched := listing.Filter(items, func(c ConnectionType) bool {
		return listing.Matches(q, c.Name, c.Description)
	})
	return listing.Apply(matched, sort, columns)
}

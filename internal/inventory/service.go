package inventory

import "github.com/netline-isp/isp-console/internal/listing"

// ComputeStats derives the stock summary.
func ComputeStats(items []Item) Stats {
	s := Stats{TotalItems: len(items)}
	categories := map[string]struct{}{}
	for _, it := range items {
		if it.IsLowStock() {
			s.LowStockItems++
		}
		s.TotalValue += it.Value()
		categories[it.Category] = struct{}{}
	}
	s.Categories = len(categories)
	return s
}

// LowStock returns the items at or below their reorder level.
func LowStock(items []Item) []Item {
	return listing.Filter(items, Item.IsLowStock)
}

// SortKeys are the sortable columns.
var SortKeys = []string{"name", "category", "quantity", "unitPrice"}

var columns = map[string]listing.Comparator[Item]{
	"name":      func(a, b Item) int { return listing.Text(a.Name, b.Name) },
	"category":  func(a, b Item) int { return listing.Text(a.Category, b.Category) },
	"quantity":  func(a, b Item) int { return listing.Number(a.Quantity, b.Quantity) },
	"unitPrice": func(a, b Item) int { return listing.Number(a.UnitPrice, b.UnitPrice) },
}

// Filter is the list-screen filter state.
type Filter struct {
	Search   string
	Category string
	Stock    string
}

// Search applies the text, category and stock filters, then sorts.
func Search(items []Item, f Filter, sort listing.Sort) []Item {
	matched := listing.Filter(items, func(it Item) bool {
		if !listing.Matches(f.Search, it.Name, it.Brand, it.Model, it.SerialNumber) {
			return false
		}
		if f.Category != "" && f.Category != "all" && it.Category != f.Category {
			return false
		}
		switch f.Stock {
		case "low":
			return it.IsLowStock()
		case "normal":
			return !it.IsLowStock()
		}
		return true
	})
	return listing.Apply(matched, sort, columns)
}

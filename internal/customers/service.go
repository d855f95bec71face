package customers

import (
	"time"

	"github.com/netline-isp/isp-console/internal/listing"
	"github.com/netline-isp/isp-console/internal/shared"
)

// SortKeys are the sortable columns. Sorting applies to the fetched page.
var SortKeys = []string{"name", "mobile", "plan.name", "connectionType.name", "isActive"}

var columns = map[string]listing.Comparator[Customer]{
	"name":                func(a, b Customer) int { return listing.Text(a.Name, b.Name) },
	"mobile":              func(a, b Customer) int { return listing.Text(a.Mobile, b.Mobile) },
	"plan.name":           func(a, b Customer) int { return listing.Text(a.Plan.Name, b.Plan.Name) },
	"connectionType.name": func(a, b Customer) int { return listing.Text(a.ConnectionType.Name, b.ConnectionType.Name) },
	"isActive":            func(a, b Customer) int { return listing.Bool(a.IsActive, b.IsActive) },
}

// Refine re-applies the search text and the column sort to a page the
// backend already filtered.
func Refine(page []Customer, search string, sort listing.Sort) []Customer {
	matched := listing.Filter(page, func(c Customer) bool {
		return listing.Matches(search, c.Name, c.Email, c.Mobile, c.NationalID, c.Username)
	})
	return listing.Apply(matched, sort, columns)
}

// ToggleAction names what a status toggle does to c.
func ToggleAction(c Customer) string {
	if c.IsActive {
		return "deactivate"
	}
	return "activate"
}

// StatCard is one of the summary cards above the list. Clicking it applies
// Filter as the status filter.
type StatCard struct {
	Title  string
	Value  int
	Filter string
	Tone   string
}

// Summarize builds the Total, Active, Inactive and New This Month cards.
// Total is the envelope count; the others count the rows of the fetched page
// since the backend reports no per-status totals.
func Summarize(rows []Customer, total int, now time.Time) []StatCard {
	if total < len(rows) {
		total = len(rows)
	}
	now = now.In(shared.DateLocation)
	var active, inactive, fresh int
	for _, c := range rows {
		if c.IsActive {
			active++
		} else {
			inactive++
		}
		if t, ok := c.Registered(); ok && t.Year() == now.Year() && t.Month() == now.Month() {
			fresh++
		}
	}
	return []StatCard{
		{Title: "Total Customers", Value: total, Filter: "all", Tone: "info"},
		{Title: "Active Customers", Value: active, Filter: "active", Tone: "success"},
		{Title: "Inactive Customers", Value: inactive, Filter: "inactive", Tone: "danger"},
		{Title: "New This Month", Value: fresh, Filter: "new", Tone: "accent"},
	}
}

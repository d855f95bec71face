package employees

import (
	"github.com/netline-isp/isp-console/internal/listing"
	"github.com/netline-isp/isp-console/internal/shared"
)

// ComputeStats counts accounts by state and role.
func ComputeStats(list []Employee) Stats {
	s := Stats{Total: len(list)}
	for _, e := range list {
		if e.IsActive {
			s.Active++
		} else {
			s.Inactive++
		}
		if e.Role == shared.RoleAdmin {
			s.Admins++
		}
	}
	return s
}

// SortKeys are the sortable columns.
var SortKeys = []string{"name", "email", "role", "isActive"}

var columns = map[string]listing.Comparator[Employee]{
	"name":     func(a, b Employee) int { return listing.Text(a.FullName(), b.FullName()) },
	"email":    func(a, b Employee) int { return listing.Text(a.Email, b.Email) },
	"role":     func(a, b Employee) int { return listing.Text(a.RoleLabel(), b.RoleLabel()) },
	"isActive": func(a, b Employee) int { return listing.Bool(a.IsActive, b.IsActive) },
}

// Search matches full name, email and phone, then sorts.
func Search(list []Employee, q string, sort listing.Sort) []Employee {
	matched := listing.Filter(list, func(e Employee) bool {
		return listing.Matches(q, e.FullName(), e.Email, e.Phone)
	})
	return listing.Apply(matched, sort, columns)
}

// ToggleAction names what a status toggle does to e.
func ToggleAction(e Employee) string {
	if e.IsActive {
		return "deactivate"
	}
	return "activate"
}

package packages

import (
	"github.com/netline-isp/isp-console/internal/listing"
)

// ComputeStats derives the catalog summary. Speeds are zero for an empty catalog.
func ComputeStats(pkgs []Package) Stats {
	s := Stats{TotalPackages: len(pkgs)}
	if len(pkgs) == 0 {
		return s
	}
	s.MinSpeed = pkgs[0].Speed
	for _, p := range pkgs {
		s.TotalRevenue += p.Price
		s.MaxSpeed = max(s.MaxSpeed, p.Speed)
		s.MinSpeed = min(s.MinSpeed, p.Speed)
	}
	s.AveragePrice = s.TotalRevenue / float64(len(pkgs))
	return s
}

// SortKeys are the sortable columns of the package table.
var SortKeys = []string{"name", "price", "speed"}

var columns = map[string]listing.Comparator[Package]{
	"name":  func(a, b Package) int { return listing.Text(a.Name, b.Name) },
	"price": func(a, b Package) int { return listing.Number(a.Price, b.Price) },
	"speed": func(a, b Package) int { return listing.Number(a.Speed, b.Speed) },
}

// Search filters by name or description and applies the column sort.
func Search(pkgs []Package, q string, sort listing.Sort) []Package {
	matched := listing.Filter(pkgs, func(p Package) bool {
		return listing.Matches(q, p.Name, p.Description)
	})
	return listing.Apply(matched, sort, columns)
}

package packages

// Package is an internet plan sold to customers.
type Package struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Speed       float64 `json:"speed"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// Input is the create/update payload.
type Input struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Speed       float64 `json:"speed"`
	Description string  `json:"description"`
}

// Stats summarises the catalog.
type Stats struct {
	TotalPackages int
	TotalRevenue  float64
	AveragePrice  float64
	MaxSpeed      float64
	MinSpeed      float64
}

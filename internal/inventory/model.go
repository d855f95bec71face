package inventory

// Categories is the fixed set of stock categories, in display order.
var Categories = []string{"router", "modem", "cable", "connector", "antenna", "power_supply", "other"}

// Item is one stock line.
type Item struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Quantity        int     `json:"quantity"`
	MinQuantity     int     `json:"minQuantity"`
	UnitPrice       float64 `json:"unitPrice"`
	Location        string  `json:"location"`
	Supplier        string  `json:"supplier"`
	SupplierContact string  `json:"supplierContact"`
	PurchaseDate    string  `json:"purchaseDate"`
	WarrantyExpiry  string  `json:"warrantyExpiry"`
	SerialNumber    string  `json:"serialNumber"`
	Notes           string  `json:"notes"`
	ImageURL        string  `json:"imageUrl"`
}

// IsLowStock reports whether the quantity has reached the reorder level.
func (i Item) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// Value is quantity times unit price.
func (i Item) Value() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Input is the create/update payload.
type Input struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Quantity        int     `json:"quantity"`
	MinQuantity     int     `json:"minQuantity"`
	UnitPrice       float64 `json:"unitPrice"`
	Location        string  `json:"location"`
	Supplier        string  `json:"supplier"`
	SupplierContact string  `json:"supplierContact"`
	PurchaseDate    string  `json:"purchaseDate,omitempty"`
	WarrantyExpiry  string  `json:"warrantyExpiry,omitempty"`
	SerialNumber    string  `json:"serialNumber"`
	Notes           string  `json:"notes"`
}

// Stats summarises the stock.
type Stats struct {
	TotalItems    int
	LowStockItems int
	TotalValue    float64
	Categories    int
}

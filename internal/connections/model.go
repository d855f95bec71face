package connections

// ConnectionType is a way of connecting a customer (fiber, wireless, DSL).
type ConnectionType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    string `json:"isActive,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Input is the create/update payload.
type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

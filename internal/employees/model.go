package employees

import "strings"

// Roles an employee may hold.
var Roles = []string{"employee", "admin"}

// Employee is a back-office user account.
type Employee struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role,omitempty"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// RoleLabel falls back to "Employee" when the backend sends no role.
func (e Employee) RoleLabel() string {
	if e.Role == "" {
		return "Employee"
	}
	return strings.ToUpper(e.Role[:1]) + e.Role[1:]
}

// Input is the create/update payload. An empty password is left out.
type Input struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Password  string `json:"password,omitempty"`
}

// Stats are the counters above the employee table.
type Stats struct {
	Total    int
	Active   int
	Inactive int
	Admins   int
}

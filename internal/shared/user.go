package shared

import "strings"

// RoleAdmin is the backend role allowed to manage employees and catalogs.
const RoleAdmin = "admin"

// CurrentUser is the signed-in backend user cached alongside the access token.
type CurrentUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// FullName joins first and last name.
func (u CurrentUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user carries the admin role.
func (u CurrentUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

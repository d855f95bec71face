package customers

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
)

// StatusPending is what new customers start as.
const StatusPending = "pending"

// StatusFilters are the list screen's status options.
var StatusFilters = []string{"all", "active", "inactive", "new"}

// PlanRef is the package a customer subscribes to.
type PlanRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// TypeRef is the customer's connection type.
type TypeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Customer is a subscriber as the backend returns it. ConnectionStartDate is
// Unix seconds, sometimes sent as a numeric string.
type Customer struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Username            string      `json:"username"`
	Phone               string      `json:"phone"`
	Email               string      `json:"email"`
	Mobile              string      `json:"mobile"`
	NationalID          string      `json:"nationalId"`
	Address             string      `json:"address"`
	IsActive            bool        `json:"isActive"`
	Status              string      `json:"status"`
	ConnectionStartDate any         `json:"connectionStartDate"`
	RegistrationDate    any         `json:"registrationDate,omitempty"`
	Plan                PlanRef     `json:"plan"`
	ConnectionType      TypeRef     `json:"connectionType"`
	AddedBy             backend.Ref `json:"addedBy"`
}

// Registered is when the customer signed up: the registration date when the
// backend sends one, else the connection start date.
func (c Customer) Registered() (time.Time, bool) {
	if t, ok := shared.ParseTimestamp(c.RegistrationDate); ok {
		return t, true
	}
	return shared.ParseTimestamp(c.ConnectionStartDate)
}

// ActivationDate formats the connection start date as YYYY-MM-DD.
func (c Customer) ActivationDate() string {
	return shared.UnixToDateInput(c.ConnectionStartDate)
}

// CreateInput is the POST /customers payload. Plan and connection type are
// sent as bare ids.
type CreateInput struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	NationalID     string `json:"nationalId"`
	Mobile         string `json:"mobile"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Plan           string `json:"plan"`
	ConnectionType string `json:"connectionType"`
	Status         string `json:"status"`
}

// UpdateInput is the PUT /customers/:id payload. An empty password and an
// unchanged plan are left out.
type UpdateInput struct {
	Name                string `json:"name"`
	Username            string `json:"username"`
	Password            string `json:"password,omitempty"`
	NationalID          string `json:"nationalId"`
	Mobile              string `json:"mobile"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Address             string `json:"address"`
	Plan                string `json:"plan,omitempty"`
	ConnectionType      string `json:"connectionType"`
	ConnectionStartDate int64  `json:"connectionStartDate"`
	IsActive            bool   `json:"isActive"`
}

// ListParams are the server-side list filters.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// PickerOption is an entry of the plan or connection type pickers.
type PickerOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

// Catalog holds the picker options of the connection step.
type Catalog struct {
	Plans           []PickerOption
	ConnectionTypes []PickerOption
}

// UnmarshalJSON accepts a bare plan id as well as the populated object.
func (p *PlanRef) UnmarshalJSON(data []byte) error {
	if id, ok := bareID(data); ok {
		*p = PlanRef{ID: id}
		return nil
	}
	type plain PlanRef
	return json.Unmarshal(data, (*plain)(p))
}

// UnmarshalJSON accepts a bare connection type id as well as the object.
func (t *TypeRef) UnmarshalJSON(data []byte) error {
	if id, ok := bareID(data); ok {
		*t = TypeRef{ID: id}
		return nil
	}
	type plain TypeRef
	return json.Unmarshal(data, (*plain)(t))
}

func bareID(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return "", false
	}
	return id, true
}

package connections

import (
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// Form is the posted connection type form.
type Form struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"max=500"`
}

var messages = shared.Messages{
	"name":            "Name is required",
	"description.max": "Description too long (max 500 chars)",
}

// Validate trims and checks the form.
func (f Form) Validate(v *shared.Validator) (Input, shared.FormErrors) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	return Input{Name: f.Name, Description: f.Description}, v.Check(f, messages)
}

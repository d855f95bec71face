package employees

import (
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// Form is the posted employee form. Password rules depend on whether the
// account already exists.
type Form struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,email_simple"`
	Phone     string `form:"phone"`
	Role      string `form:"role" validate:"required,oneof=admin employee"`
	Password  string `form:"password"`
}

var messages = shared.Messages{
	"firstName":          "First name is required",
	"lastName":           "Last name is required",
	"email.required":     "Email is required",
	"email.email_simple": "Invalid email format",
	"role":               "Role must be admin or employee",
	"password.required":  "Password is required",
	"password.min":       "Password must be at least 4 characters",
}

type createForm struct {
	Form
	Password string `form:"password" validate:"required,min=4"`
}

type editForm struct {
	Form
	Password string `form:"password" validate:"omitempty,min=4"`
}

// FormFromEmployee pre-populates the edit form.
func FormFromEmployee(e *Employee) Form {
	role := e.Role
	if role == "" {
		role = "employee"
	}
	return Form{FirstName: e.FirstName, LastName: e.LastName, Email: e.Email, Phone: e.Phone, Role: role}
}

// Validate checks the form. creating selects the password rule.
func (f Form) Validate(v *shared.Validator, creating bool) (Input, shared.FormErrors) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)

	var errs shared.FormErrors
	if creating {
		errs = v.Check(createForm{Form: f, Password: f.Password}, messages)
	} else {
		errs = v.Check(editForm{Form: f, Password: f.Password}, messages)
	}
	return Input{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Role:      f.Role,
		Password:  f.Password,
	}, errs
}

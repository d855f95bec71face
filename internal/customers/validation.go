package customers

import (
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// Mode selects the create or edit rule set.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Step is one page of the customer wizard.
type Step struct {
	Key    string
	Title  string
	Fields []string
}

// Steps lists the wizard pages in order. Activation date only exists on edit.
var Steps = []Step{
	{Key: "basic", Title: "Basic Info", Fields: []string{"name", "username", "password", "nationalId"}},
	{Key: "contact", Title: "Contact", Fields: []string{"mobile", "phone", "email", "address"}},
	{Key: "connection", Title: "Connection", Fields: []string{"plan", "connectionType", "connectionStartDate"}},
}

// StepIndex returns the position of key, or 0 for an unknown key.
func StepIndex(key string) int {
	for i, s := range Steps {
		if s.Key == key {
			return i
		}
	}
	return 0
}

// Form is the wizard state. Every step's values travel with every POST.
type Form struct {
	Name                string `form:"name" validate:"required"`
	Username            string `form:"username" validate:"required,min=3"`
	Password            string `form:"password"`
	NationalID          string `form:"nationalId" validate:"required,min=5,max=13"`
	Mobile              string `form:"mobile" validate:"required,min=10,max=11,digits"`
	Phone               string `form:"phone"`
	Email               string `form:"email" validate:"omitempty,email_simple"`
	Address             string `form:"address" validate:"max=500"`
	Plan                string `form:"plan" validate:"required"`
	ConnectionType      string `form:"connectionType" validate:"required"`
	ConnectionStartDate string `form:"connectionStartDate"`
	IsActive            bool   `form:"isActive"`
	OriginalPlan        string `form:"originalPlan"`
}

type createRules struct {
	Form
	Password string `form:"password" validate:"required,min=4"`
}

type editRules struct {
	Form
	Password            string `form:"password" validate:"omitempty,min=4"`
	ConnectionStartDate string `form:"connectionStartDate" validate:"required,datetime=2006-01-02"`
}

var messages = shared.Messages{
	"name":                         "Name is required",
	"username.required":            "Username is required",
	"username.min":                 "Username must be at least 3 characters",
	"password.required":            "Password is required",
	"password.min":                 "Password must be at least 4 characters",
	"nationalId.required":          "National ID is required",
	"nationalId.min":               "Must be between 13 characters",
	"nationalId.max":               "Must be between 13 characters",
	"mobile.required":              "Mobile number is required",
	"mobile.min":                   "Must be between 11 digits",
	"mobile.max":                   "Must be between 11 digits",
	"mobile.digits":                "Must contain only numbers",
	"email":                        "Invalid email format",
	"address":                      "Address too long (max 500 chars)",
	"plan":                         "Plan is required",
	"connectionType":               "Connection type is required",
	"connectionStartDate.required": "Activation date is required",
	"connectionStartDate.datetime": "Invalid activation date",
}

// SubmitError is shown when a final submit still has invalid fields.
const SubmitError = "Please fix the errors before submitting"

// Normalize trims the text fields.
func (f Form) Normalize() Form {
	f.Name = strings.TrimSpace(f.Name)
	f.Username = strings.TrimSpace(f.Username)
	f.NationalID = strings.TrimSpace(f.NationalID)
	f.Mobile = strings.TrimSpace(f.Mobile)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	return f
}

// Check validates every field under mode's rules.
func (f Form) Check(v *shared.Validator, mode Mode) shared.FormErrors {
	f = f.Normalize()
	if mode == ModeEdit {
		return v.Check(editRules{Form: f, Password: f.Password, ConnectionStartDate: f.ConnectionStartDate}, messages)
	}
	return v.Check(createRules{Form: f, Password: f.Password}, messages)
}

// CheckStep validates only the fields on one wizard step.
func (f Form) CheckStep(v *shared.Validator, mode Mode, step int) shared.FormErrors {
	return f.Check(v, mode).Only(Steps[step].Fields...)
}

// CheckThrough validates the given step plus every earlier one and returns
// the first step that has errors, or -1.
func (f Form) CheckThrough(v *shared.Validator, mode Mode, step int) (shared.FormErrors, int) {
	all := f.Check(v, mode)
	out := shared.FormErrors{}
	first := -1
	for i := 0; i <= step && i < len(Steps); i++ {
		stepErrs := all.Only(Steps[i].Fields...)
		if stepErrs.Any() && first < 0 {
			first = i
		}
		for k, msg := range stepErrs {
			out[k] = msg
		}
	}
	return out, first
}

// CheckField validates a single field for on-change feedback. It returns ""
// when the value is acceptable.
func CheckField(v *shared.Validator, mode Mode, field, value string) string {
	f := Form{}
	switch field {
	case "name":
		f.Name = value
	case "username":
		f.Username = value
	case "password":
		f.Password = value
	case "nationalId":
		f.NationalID = value
	case "mobile":
		f.Mobile = value
	case "phone":
		f.Phone = value
	case "email":
		f.Email = value
	case "address":
		f.Address = value
	case "plan":
		f.Plan = value
	case "connectionType":
		f.ConnectionType = value
	case "connectionStartDate":
		f.ConnectionStartDate = value
	default:
		return ""
	}
	return f.Check(v, mode)[field]
}

// CreateInput builds the create payload. New customers start pending.
func (f Form) CreateInput() CreateInput {
	f = f.Normalize()
	return CreateInput{
		Name:           f.Name,
		Username:       f.Username,
		Password:       f.Password,
		NationalID:     f.NationalID,
		Mobile:         f.Mobile,
		Phone:          f.Phone,
		Email:          f.Email,
		Address:        f.Address,
		Plan:           f.Plan,
		ConnectionType: f.ConnectionType,
		Status:         StatusPending,
	}
}

// UpdateInput builds the edit payload. The form must already be valid.
func (f Form) UpdateInput() (UpdateInput, error) {
	f = f.Normalize()
	start, err := shared.DateInputToUnix(f.ConnectionStartDate)
	if err != nil {
		return UpdateInput{}, err
	}
	in := UpdateInput{
		Name:                f.Name,
		Username:            f.Username,
		Password:            f.Password,
		NationalID:          f.NationalID,
		Mobile:              f.Mobile,
		Phone:               f.Phone,
		Email:               f.Email,
		Address:             f.Address,
		ConnectionType:      f.ConnectionType,
		ConnectionStartDate: start,
		IsActive:            f.IsActive,
	}
	if f.Plan != f.OriginalPlan {
		in.Plan = f.Plan
	}
	return in, nil
}

// FormFromCustomer pre-populates the edit wizard.
func FormFromCustomer(c *Customer) Form {
	return Form{
		Name:                c.Name,
		Username:            c.Username,
		NationalID:          c.NationalID,
		Mobile:              c.Mobile,
		Phone:               c.Phone,
		Email:               c.Email,
		Address:             c.Address,
		Plan:                c.Plan.ID,
		OriginalPlan:        c.Plan.ID,
		ConnectionType:      c.ConnectionType.ID,
		ConnectionStartDate: c.ActivationDate(),
		IsActive:            c.IsActive,
	}
}

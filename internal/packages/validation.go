package packages

import (
	"strconv"
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// Form is the raw package form as posted.
type Form struct {
	Name        string `form:"name" validate:"required"`
	Price       string `form:"price" validate:"required,number"`
	Speed       string `form:"speed" validate:"required,number"`
	Description string `form:"description" validate:"max=500"`
}

var messages = shared.Messages{
	"name":            "Name is required",
	"price":           "Price must be greater than 0",
	"speed":           "Speed must be greater than 0",
	"description.max": "Description too long (max 500 chars)",
}

// FormFromPackage pre-populates the edit form.
func FormFromPackage(p *Package) Form {
	return Form{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Speed:       strconv.FormatFloat(p.Speed, 'f', -1, 64),
		Description: p.Description,
	}
}

// Validate checks the form and converts it to the backend payload.
func (f Form) Validate(v *shared.Validator) (Input, shared.FormErrors) {
	f.Name = strings.TrimSpace(f.Name)
	errs := v.Check(f, messages)
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	speed, _ := strconv.ParseFloat(strings.TrimSpace(f.Speed), 64)
	if price <= 0 {
		errs.Add("price", messages["price"])
	}
	if speed <= 0 {
		errs.Add("speed", messages["speed"])
	}
	return Input{Name: f.Name, Price: price, Speed: speed, Description: strings.TrimSpace(f.Description)}, errs
}

package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netline-isp/isp-console/internal/shared"
)

func TestFormValidate(t *testing.T) {
	v := shared.NewValidator()

	input, errs := Form{Name: " Basic ", Price: "1500", Speed: "10"}.Validate(v)
	assert.False(t, errs.Any())
	assert.Equal(t, Input{Name: "Basic", Price: 1500, Speed: 10}, input)

	_, errs = Form{Price: "0", Speed: "abc"}.Validate(v)
	assert.Equal(t, shared.FormErrors{
		"name":  "Name is required",
		"price": "Price must be greater than 0",
		"speed": "Speed must be greater than 0",
	}, errs)
}

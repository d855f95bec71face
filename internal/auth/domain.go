package auth

import (
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// loginForm is the sign-in form as posted.
type loginForm struct {
	Email    string `form:"email" validate:"required,email_simple"`
	Password string `form:"password" validate:"required"`
}

var loginMessages = shared.Messages{
	"email.required":     "Email is required",
	"email.email_simple": "Please enter a valid email",
	"password":           "Password is required",
}

func (f loginForm) validate(v *shared.Validator) (loginForm, shared.FormErrors) {
	f.Email = strings.TrimSpace(f.Email)
	return f, v.Check(f, loginMessages)
}

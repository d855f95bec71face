package shared

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// FormErrors maps a form field name to its message.
type FormErrors map[string]string

// Add records msg for field unless the field already has a message.
func (e FormErrors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Any reports whether at least one field failed.
func (e FormErrors) Any() bool { return len(e) > 0 }

// Only keeps the messages of the listed fields.
func (e FormErrors) Only(fields ...string) FormErrors {
	out := FormErrors{}
	for _, f := range fields {
		if msg, ok := e[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// Messages resolves a failed rule to display text. Keys are "field.tag"
// with a "field" fallback.
type Messages map[string]string

// Validator wraps go-playground/validator with the console's rule names and
// reports errors under the form field names.
type Validator struct {
	v *validator.Validate
}

// NewValidator registers the console-specific rules:
//   - email_simple: something@something.tld without spaces
//   - digits: ASCII digits only
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("email_simple", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Check validates s and returns one message per failing field.
func (v *Validator) Check(s any, messages Messages) FormErrors {
	out := FormErrors{}
	err := v.v.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("general", err.Error())
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out.Add(field, msg)
			continue
		}
		if msg, ok := messages[field]; ok {
			out.Add(field, msg)
			continue
		}
		out.Add(field, "Invalid "+field)
	}
	return out
}

// ValidEmail applies the same pattern as the email_simple rule.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

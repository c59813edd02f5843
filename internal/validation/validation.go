// Package validation turns validator/v10 struct tags into the per-field error
// list returned to API clients.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"inotebook-server/internal/domain"

	"github.com/go-playground/validator/v10"
)

const locationBody = "body"

// messages is keyed by "<json field>.<rule>".
var messages = map[string]string{
	"title.min":              "Title must be atleast 3 character",
	"description.min":        "Description must be atleast 3 character",
	"tag.min":                "Tag must be atleast 3 character",
	"name.min":               "Name must be atleast 3 character",
	"email.email":            "Enter a valid email",
	"password.min":           "Password must be atleast 8 character",
	"password.required":      "Password cannot be blank",
	"refresh_token.required": "Refresh token is required",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate checks req against its struct tags. It returns nil when req is
// valid, otherwise one entry per failing field in declaration order.
func (v *Validator) Validate(req interface{}) []domain.FieldError {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []domain.FieldError{{Msg: err.Error(), Location: locationBody}}
	}

	out := make([]domain.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.FieldError{
			Field:    fe.Field(),
			Msg:      message(fe),
			Value:    fe.Value(),
			Location: locationBody,
		})
	}

	return out
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
}

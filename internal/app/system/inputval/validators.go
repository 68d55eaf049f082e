// internal/app/system/inputval/validators.go
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/kasula/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Error messages use the `label` tag, then the json name, then the Go name.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
			return f.Name
		})

		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return IsValidUsername(fl.Field().String())
		})
		_ = v.RegisterValidation("kemail", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("docid", func(fl validator.FieldLevel) bool {
			return IsValidID(fl.Field().String())
		})
		_ = v.RegisterValidation("notifstatus", func(fl validator.FieldLevel) bool {
			return models.IsValidNotificationStatus(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// FieldError is one failed rule with a human-readable message.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validate runs the `validate` struct tags on v.
func Validate(v any) *Result {
	res := &Result{}
	err := instance().Struct(v)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	}

	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s%s.", label, fe.Param(), unit)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s%s.", label, fe.Param(), unit)
	case "email", "kemail":
		return "A valid email address is required."
	case "username":
		return label + " must be 3-30 letters, digits, '.', '_' or '-'."
	case "docid":
		return label + " must be a valid identifier."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "notifstatus":
		return label + " must be one of: unread, read, deleted."
	case "url", "http_url":
		return label + " must be a valid URL."
	}
	return fmt.Sprintf("%s is invalid.", label)
}

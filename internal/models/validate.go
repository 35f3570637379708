package models

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	validations := map[string]validator.Func{
		"httpurl":  isHTTPURL,
		"category": isRegisteredCategory,
	}
	for name, fn := range validations {
		if err := v.RegisterValidation(name, fn); err != nil {
			panic("register validation " + name + ": " + err.Error())
		}
	}
	return v
}

// isHTTPURL accepts absolute http(s) URLs with a host.
func isHTTPURL(fl validator.FieldLevel) bool {
	return IsHTTPURL(fl.Field().String())
}

func isRegisteredCategory(fl validator.FieldLevel) bool {
	return IsKnownCategory(fl.Field().String())
}

// IsHTTPURL reports whether s parses as an absolute URL using the http or
// https scheme with a non-empty host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var draftMessages = map[string]string{
	"text.required":     "Please share a fact.",
	"text.max":          "A fact can be at most 200 characters long.",
	"source.required":   "Please add a trustworthy source.",
	"source.httpurl":    "The source must be a valid http or https URL.",
	"category.required": "Please choose a category.",
	"category.category": "Please choose one of the listed categories.",
}

func validateDraft(d Draft) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	msg, ok := draftMessages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = "is invalid"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}

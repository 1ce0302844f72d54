// Package types provides type definitions for structured data used throughout the task-recommender system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks that the entity carries finite numbers and non-empty tag strings.
func (e *Entity) Validate() error {
	return validationError(validate.Struct(e))
}

// validationError converts validator errors into an InvalidEntityError naming the first failing field.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &InvalidEntityError{Message: "validation failed", Cause: err}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return &InvalidEntityError{Field: field, Message: describeTag(fe.Tag(), fe.Param())}
}

func describeTag(tag, param string) string {
	switch tag {
	case "finite":
		return "must be a finite number"
	case "required":
		return "is required"
	case "min":
		return "must contain at least " + param + " element(s)"
	default:
		return "failed " + tag + " validation"
	}
}

package api

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/pageza/recipebox/backend/internal/types"
)

var registerOnce sync.Once

// registerValidators adds the notblank rule to gin's validator and makes
// field errors report JSON field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// validationMessage turns a binding error into a "<field> <violation>"
// message. When several fields fail only the last violation is reported.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[len(verrs)-1]
		return fe.Field() + " " + violation(fe)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " must be of type " + typeErr.Type.String()
	}

	return err.Error()
}

func violation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "min":
		return "must not be empty"
	case "required":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return "must not be empty"
		}
		return "must not be null"
	default:
		return "is invalid"
	}
}

// ValidateRecipeRequest applies the request binding rules outside of an HTTP
// call and returns the same message a handler would.
func ValidateRecipeRequest(req types.RecipeRequest) error {
	registerValidators()
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	return v
}

// fieldName reports fields by their query or json name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// ReadAndValidateRequest binds query or body into req, fills `default` tags
// and runs `validate` tags. It returns nil when req is usable.
func ReadAndValidateRequest(c echo.Context, req interface{}) []ValidationError {
	if err := c.Bind(req); err != nil {
		return toValidationErrors(err)
	}
	if err := defaults.Set(req); err != nil {
		return toValidationErrors(err)
	}
	if err := validate.StructCtx(c.Request().Context(), req); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func toValidationErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := make([]ValidationError, len(fieldErrs))
		for i, fe := range fieldErrs {
			out[i] = describe(fe)
		}
		return out
	}

	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return []ValidationError{{Code: "ERR_UNKNOWN", Message: msg}}
}

type rule struct {
	format string // field, param
	param  string // key in ValidationError.Params
}

var rules = map[string]rule{
	"required": {format: "%s is required"},
	"numeric":  {format: "%s must be numeric"},
	"gt":       {format: "%s must be greater than %s", param: "value"},
	"gte":      {format: "%s must be greater than or equal to %s", param: "min"},
	"lt":       {format: "%s must be less than %s", param: "value"},
	"lte":      {format: "%s must be less than or equal to %s", param: "max"},
	"min":      {format: "%s must be at least %s", param: "min"},
	"max":      {format: "%s must be at most %s", param: "max"},
}

func describe(fe validator.FieldError) ValidationError {
	ve := ValidationError{
		Code:  "ERR_" + strings.ToUpper(fe.Tag()),
		Field: fe.Field(),
	}

	if fe.Tag() == "oneof" {
		options := strings.Fields(fe.Param())
		ve.Message = fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(options, ", "))
		ve.Params = map[string]interface{}{"options": options}
		return ve
	}

	r, ok := rules[fe.Tag()]
	if !ok {
		ve.Message = fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
		return ve
	}

	if r.param == "" {
		ve.Message = fmt.Sprintf(r.format, fe.Field())
		return ve
	}
	ve.Message = fmt.Sprintf(r.format, fe.Field(), fe.Param())
	if (fe.Tag() == "min" || fe.Tag() == "max") && fe.Kind() == reflect.String {
		ve.Message += " characters"
	}
	ve.Params = map[string]interface{}{r.param: fe.Param()}
	return ve
}

// Package validation contains the logic for validating request data.
//
// It uses the validator library to enforce rules defined in struct tags,
// plus CustomValidationErrors for rules tags cannot express (such as the
// fixed field-checking order on the add-exercise endpoint), and extracts
// failures into a format the client can understand.
package validation

import (
	"fmt"
	"strings"

	"github.com/deppfellow/fitlog/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that runs validator.Struct(req), or
//     returns CustomValidationErrors for ordered/custom checks.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a
// specific field, used when the rule cannot be expressed via tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that
// satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from body/query params.
//  2. payload.Validate() applies validation rules.
//  3. Failures become a 400 *errs.HTTPError whose message is the first
//     field error ("description is required"), with the full field error
//     list attached.
//
// payload must be a pointer so Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("invalid request payload", false, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

// validateStruct calls v.Validate() and extracts field errors if
// validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

// extractValidationError converts validator.ValidationErrors or
// CustomValidationErrors into field errors plus a top-level message built
// from the first failure, e.g. "duration must be a number".
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		customValidationErrors, ok := err.(CustomValidationErrors)
		if !ok {
			return err.Error(), []errs.FieldError{{Field: "", Error: err.Error()}}
		}

		for _, cerr := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: cerr.Field,
				Error: cerr.Message,
			})
		}
	}

	for _, verr := range validationErrors {
		field := strings.ToLower(verr.Field())
		var msg string

		switch verr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			msg = fmt.Sprintf("must be at least %s", verr.Param())

		case "max":
			msg = fmt.Sprintf("must not exceed %s", verr.Param())

		case "numeric":
			msg = "must be a number"

		default:
			if verr.Param() != "" {
				msg = fmt.Sprintf("%s:%s", verr.Tag(), verr.Param())
			} else {
				msg = verr.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	if len(fieldErrors) == 0 {
		return "", nil
	}

	first := fieldErrors[0]
	return strings.TrimSpace(first.Field + " " + first.Error), fieldErrors
}

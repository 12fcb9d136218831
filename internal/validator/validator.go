package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// ValidationError maps json field names to human readable messages.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator with json field names and domain rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerCustomRules(v)

	return &Validator{validate: v}
}

// Validate returns *ValidationError when the struct breaks any rule.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fields[fieldPath(fe)] = message(fe)
	}
	return &ValidationError{Errors: fields}
}

// Check validates and converts failures into a VALIDATION_FAILED domain error.
func (v *Validator) Check(i interface{}) error {
	err := v.Validate(i)
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(ve.Errors))
	for field, msg := range ve.Errors {
		details[field] = msg
	}
	return apperrors.NewValidationError("request validation failed", details)
}

// fieldPath drops the top-level struct name from the namespace: "RegisterRequest.email" -> "email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isSized(fe.Kind()) {
			return fmt.Sprintf("must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isSized(fe.Kind()) {
			return fmt.Sprintf("must be at most %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url", "http_url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "role_type":
		return "must be one of: ghostwriter, pm-writes, content-writer"
	case "pricing_tier":
		return "must be one of: $, $$, $$$"
	case "availability":
		return "must be one of: open, limited, booked"
	case "match_status":
		return "must be one of: suggested, shortlisted, contacted, hired, declined"
	case "notblank":
		return "must not be blank"
	default:
		return fmt.Sprintf("invalid value (failed on '%s' tag)", fe.Tag())
	}
}

func isSized(kind reflect.Kind) bool {
	return kind == reflect.String || kind == reflect.Slice || kind == reflect.Map
}

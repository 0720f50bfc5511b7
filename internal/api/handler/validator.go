package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors aggregates every violated field constraint on a request.
// The error handler renders it as {"success":false,"errors":[...]} so clients
// see all problems at once rather than the first.
type ValidationErrors struct {
	Fields []string
}

func (e *ValidationErrors) Error() string {
	return strings.Join(e.Fields, "; ")
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	isbnPattern     = regexp.MustCompile(`^(?:\d{10}|\d{13})$`)
	mongoIDPattern  = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields under their JSON (or query) names so messages match what
	// the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			if name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	// username: letters, numbers, underscores and hyphens only.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	// strongpassword: at least one lowercase, one uppercase and one digit.
	// Length is checked separately via min so the two rules report distinctly.
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return lower && upper && digit
	})

	// isbn: plain 10- or 13-digit form, no hyphens.
	_ = v.RegisterValidation("isbn", func(fl validator.FieldLevel) bool {
		return isbnPattern.MatchString(fl.Field().String())
	})

	// mongoid: 24-character hex object id.
	_ = v.RegisterValidation("mongoid", func(fl validator.FieldLevel) bool {
		return mongoIDPattern.MatchString(fl.Field().String())
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. It collects all field
// violations into a single ValidationErrors value.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return &ValidationErrors{Fields: msgs}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "username":
		return field + " can only contain letters, numbers, underscores, and hyphens"
	case "strongpassword":
		return field + " must contain at least one uppercase letter, one lowercase letter, and one number"
	case "isbn":
		return field + " must be 10 or 13 digits"
	case "mongoid":
		return "invalid " + field + " format"
	case "dive":
		return field + " entries failed validation"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

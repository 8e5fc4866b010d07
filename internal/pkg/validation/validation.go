package validation

import (
	"reflect"
	"regexp"
	"strings"

	"fulkoping-rental/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern    = regexp.MustCompile(`^\+\d{2}\s?\d{6,15}$`)
	employeePattern = regexp.MustCompile(`^[A-Z]{6}[1-9][0-9]?$`)
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their json name so problem bodies match the wire format.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("empno", func(fl validator.FieldLevel) bool {
		return employeePattern.MatchString(fl.Field().String())
	})
}

// Struct validates a tagged request struct and returns one violation per
// failing field, or nil when the struct is valid.
func Struct(v any) []domain.FieldViolation {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []domain.FieldViolation{{Field: "request", Message: "is invalid"}}
	}

	violations := make([]domain.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, domain.FieldViolation{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return violations
}

// Value validates a single value against a rule string, reporting the
// violation under the given field name. Used for patch payloads where only
// the provided fields are re-checked.
func Value(field string, value any, rules string) *domain.FieldViolation {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &domain.FieldViolation{Field: field, Message: "is invalid"}
	}
	return &domain.FieldViolation{Field: field, Message: message(verrs[0])}
}

// message renders a human-readable constraint message for a violation.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be in format +46xxxxxxx"
	case "empno":
		return "must be in format ABCDEF1-ABCDEF99"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

package services

import (
	"fulkoping-rental/internal/adapters/persistence/models"
	"fulkoping-rental/internal/core/domain"
	"fulkoping-rental/internal/pkg/validation"
)

// patchRules maps each patchable field to the validation rules it must pass.
// These mirror the create-time constraints.
var patchRules = map[string]string{
	"firstName":   "min=2,max=20",
	"lastName":    "min=2,max=20",
	"email":       "email",
	"phoneNumber": "phone",
}

// ValidatePatchFields screens a partial-update body against the allow-list
// for the user's variant. Fields outside the list are rejected by name,
// values must be strings, and each value is re-validated with the create
// rules. Returns the accepted field values.
func ValidatePatchFields(user *models.User, fields map[string]any) (map[string]string, error) {
	if len(fields) == 0 {
		return nil, domain.ErrEmptyPatchBody
	}

	var violations []domain.FieldViolation
	values := make(map[string]string, len(fields))

	for field, raw := range fields {
		if !patchFieldAllowed(user, field) {
			return nil, &domain.FieldNotAllowedError{Field: field}
		}

		value, ok := raw.(string)
		if !ok {
			violations = append(violations, domain.FieldViolation{
				Field:   field,
				Message: "must be a string",
			})
			continue
		}

		if v := validation.Value(field, value, patchRules[field]); v != nil {
			violations = append(violations, *v)
			continue
		}

		values[field] = value
	}

	if len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}
	return values, nil
}

func patchFieldAllowed(user *models.User, field string) bool {
	switch field {
	case "firstName", "lastName", "email":
		return true
	case "phoneNumber":
		// Only customers carry a phone number.
		return user.IsCustomer()
	default:
		return false
	}
}

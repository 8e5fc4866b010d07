package domain

import "errors"

// Common domain errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrRentalNotFound  = errors.New("rental not found")

	ErrVehicleAlreadyRented  = errors.New("vehicle is already rented")
	ErrRentalAlreadyReturned = errors.New("rental already returned")

	ErrUserHasActiveRental    = errors.New("cannot delete user with active rentals")
	ErrVehicleHasActiveRental = errors.New("cannot delete vehicle with active rentals")

	ErrUnknownUserType    = errors.New("unknown user type")
	ErrUnknownVehicleType = errors.New("unknown vehicle type")

	ErrEmptyPatchBody = errors.New("request body cannot be empty")
)

// ConflictError reports a unique-constraint collision, naming the offending
// field (email, employeeNumber or registrationNumber).
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

// FieldNotAllowedError rejects a patch key outside the allow-list.
type FieldNotAllowedError struct {
	Field string
}

func (e *FieldNotAllowedError) Error() string {
	return "Field not allowed: " + e.Field
}

// FieldViolation is a single per-field constraint failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates per-field constraint failures for one request.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msg := "invalid fields in request"
	for i, v := range e.Violations {
		if i == 0 {
			msg += ": "
		} else {
			msg += "; "
		}
		msg += v.Field + " " + v.Message
	}
	return msg
}

package handlers

import (
	"errors"
	"log"

	"fulkoping-rental/internal/core/domain"
	"fulkoping-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleServiceError maps service-layer errors onto problem responses
func handleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrRentalNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrVehicleAlreadyRented),
		errors.Is(err, domain.ErrRentalAlreadyReturned),
		errors.Is(err, domain.ErrUserHasActiveRental),
		errors.Is(err, domain.ErrVehicleHasActiveRental),
		errors.Is(err, domain.ErrUnknownUserType),
		errors.Is(err, domain.ErrUnknownVehicleType),
		errors.Is(err, domain.ErrEmptyPatchBody):
		return response.BadRequest(c, err.Error())
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return response.Conflict(c, conflict.Error())
	}

	var notAllowed *domain.FieldNotAllowedError
	if errors.As(err, &notAllowed) {
		return response.BadRequest(c, notAllowed.Error())
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return response.ValidationFailed(c, validationErr.Violations)
	}

	log.Printf("Unexpected error: %v", err)
	return response.InternalServerError(c, "An unexpected error occurred")
}

// parseID reads a positive integer path parameter
func parseID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

package handlers

import (
	"bytes"
	"encoding/json"

	"fulkoping-rental/internal/adapters/persistence/models"
	"fulkoping-rental/internal/core/services"
	"fulkoping-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RentalHandler handles rental endpoints
type RentalHandler struct {
	rentalService *services.RentalService
}

// NewRentalHandler creates a new rental handler
func NewRentalHandler(rentalService *services.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// CreateRentalRequest represents rental creation request body
type CreateRentalRequest struct {
	UserID    uint `json:"userId"`
	VehicleID uint `json:"vehicleId"`
}

// Create rents a vehicle out to a user
// @Summary Create rental
// @Description Rent a vehicle out to a user
// @Tags Rentals
// @Accept json
// @Produce json
// @Param body body CreateRentalRequest true "Rental data"
// @Success 201 {object} models.RentalResponse
// @Failure 400 {object} response.Problem
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/rentals [post]
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var req CreateRentalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.UserID == 0 {
		return response.BadRequest(c, "Field 'userId' is required")
	}
	if req.VehicleID == 0 {
		return response.BadRequest(c, "Field 'vehicleId' is required")
	}

	rental, err := h.rentalService.CreateRental(c.Context(), req.UserID, req.VehicleID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rental.ToResponse())
}

// GetAll lists all rentals
// @Summary List rentals
// @Tags Rentals
// @Produce json
// @Success 200 {array} models.RentalResponse
// @Security ApiKeyAuth
// @Router /api/rentals [get]
func (h *RentalHandler) GetAll(c *fiber.Ctx) error {
	rentals, err := h.rentalService.GetAllRentals(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(rentalResponses(rentals))
}

// GetByID gets one rental
// @Summary Get rental by ID
// @Tags Rentals
// @Produce json
// @Param id path int true "Rental ID"
// @Success 200 {object} models.RentalResponse
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/rentals/{id} [get]
func (h *RentalHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	rental, err := h.rentalService.GetRental(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(rental.ToResponse())
}

// HistoryByUser lists all rentals of a user
// @Summary Rental history for user
// @Tags Rentals
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.RentalResponse
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/rentals/history/users/{id} [get]
func (h *RentalHandler) HistoryByUser(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	rentals, err := h.rentalService.GetHistoryForUser(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(rentalResponses(rentals))
}

// HistoryByVehicle lists all rentals of a vehicle
// @Summary Rental history for vehicle
// @Tags Rentals
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {array} models.RentalResponse
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/rentals/history/vehicles/{id} [get]
func (h *RentalHandler) HistoryByVehicle(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	rentals, err := h.rentalService.GetHistoryForVehicle(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(rentalResponses(rentals))
}

// Return registers the return of a rental
// @Summary Return rental
// @Description End an active rental and free its vehicle. The request body must be empty.
// @Tags Rentals
// @Produce json
// @Param id path int true "Rental ID"
// @Success 200 {object} models.RentalResponse
// @Failure 400 {object} response.Problem
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/rentals/{id}/return [patch]
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	if !bodyIsEmpty(c.Body()) {
		return response.BadRequest(c, "Body should be empty when returning a rental.")
	}

	rental, err := h.rentalService.ReturnRental(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(rental.ToResponse())
}

// Delete removes a rental
// @Summary Delete rental
// @Description Delete a rental. An active rental frees its vehicle on deletion.
// @Tags Rentals
// @Param id path int true "Rental ID"
// @Success 204
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/rentals/{id} [delete]
func (h *RentalHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	if err := h.rentalService.DeleteRental(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// bodyIsEmpty accepts a missing body or an empty JSON object
func bodyIsEmpty(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return true
	}
	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return false
	}
	return len(fields) == 0
}

func rentalResponses(rentals []models.Rental) []models.RentalResponse {
	out := make([]models.RentalResponse, 0, len(rentals))
	for i := range rentals {
		out = append(out, *rentals[i].ToResponse())
	}
	return out
}

package handlers

import (
	"fulkoping-rental/internal/adapters/persistence/models"
	"fulkoping-rental/internal/core/services"
	"fulkoping-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VehicleHandler handles vehicle endpoints
type VehicleHandler struct {
	vehicleService *services.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// Create handles vehicle registration
// @Summary Create vehicle
// @Description Register a new car, truck or trailer
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param body body services.CreateVehicleInput true "Vehicle data"
// @Success 201 {object} models.VehicleResponse
// @Failure 400 {object} response.Problem
// @Failure 409 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var input services.CreateVehicleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Context(), input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(vehicle.ToResponse())
}

// GetAll lists all vehicles
// @Summary List vehicles
// @Tags Vehicles
// @Produce json
// @Success 200 {array} models.VehicleResponse
// @Security ApiKeyAuth
// @Router /api/vehicles [get]
func (h *VehicleHandler) GetAll(c *fiber.Ctx) error {
	vehicles, err := h.vehicleService.GetAllVehicles(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(vehicleResponses(vehicles))
}

// GetCars lists all cars
// @Summary List cars
// @Tags Vehicles
// @Produce json
// @Success 200 {array} models.VehicleResponse
// @Security ApiKeyAuth
// @Router /api/vehicles/cars [get]
func (h *VehicleHandler) GetCars(c *fiber.Ctx) error {
	return h.listByType(c, models.VehicleTypeCar)
}

// GetTrucks lists all trucks
// @Summary List trucks
// @Tags Vehicles
// @Produce json
// @Success 200 {array} models.VehicleResponse
// @Security ApiKeyAuth
// @Router /api/vehicles/trucks [get]
func (h *VehicleHandler) GetTrucks(c *fiber.Ctx) error {
	return h.listByType(c, models.VehicleTypeTruck)
}

// GetTrailers lists all trailers
// @Summary List trailers
// @Tags Vehicles
// @Produce json
// @Success 200 {array} models.VehicleResponse
// @Security ApiKeyAuth
// @Router /api/vehicles/trailers [get]
func (h *VehicleHandler) GetTrailers(c *fiber.Ctx) error {
	return h.listByType(c, models.VehicleTypeTrailer)
}

func (h *VehicleHandler) listByType(c *fiber.Ctx, vehicleType string) error {
	vehicles, err := h.vehicleService.GetAllVehiclesByType(c.Context(), vehicleType)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(vehicleResponses(vehicles))
}

// GetByID gets one vehicle
// @Summary Get vehicle by ID
// @Tags Vehicles
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {object} models.VehicleResponse
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	vehicle, err := h.vehicleService.GetVehicle(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(vehicle.ToResponse())
}

// UpdateRentStatus sets the rented flag of a vehicle
// @Summary Update rent status
// @Description Set the rented flag directly. Clearing the flag ends the vehicle's active rental if one exists.
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param body body map[string]bool true "New rent status, e.g. {\"rented\": true}"
// @Success 200 {object} models.VehicleResponse
// @Failure 400 {object} response.Problem
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/vehicles/{id}/rent [patch]
func (h *VehicleHandler) UpdateRentStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	for field := range fields {
		if field != "rented" {
			return response.BadRequest(c, "Field not allowed: "+field)
		}
	}
	raw, present := fields["rented"]
	if !present {
		return response.BadRequest(c, "Field 'rented' is required")
	}
	rented, ok := raw.(bool)
	if !ok {
		return response.BadRequest(c, "Field 'rented' must be a boolean")
	}

	vehicle, err := h.vehicleService.UpdateRentStatus(c.Context(), id, rented)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(vehicle.ToResponse())
}

// Delete removes a vehicle
// @Summary Delete vehicle
// @Description Delete a vehicle without active rentals, including its finished rental history
// @Tags Vehicles
// @Param id path int true "Vehicle ID"
// @Success 204
// @Failure 400 {object} response.Problem
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	if err := h.vehicleService.DeleteVehicle(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func vehicleResponses(vehicles []models.Vehicle) []models.VehicleResponse {
	out := make([]models.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, *vehicles[i].ToResponse())
	}
	return out
}

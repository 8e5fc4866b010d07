package handlers

import (
	"fulkoping-rental/internal/adapters/persistence/models"
	"fulkoping-rental/internal/core/services"
	"fulkoping-rental/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles user registration
// @Summary Create user
// @Description Register a new admin or customer
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} response.Problem
// @Failure 409 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.CreateUser(c.Context(), input)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user.ToResponse())
}

// GetAll lists all users
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserResponse
// @Security ApiKeyAuth
// @Router /api/users [get]
func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(userResponses(users))
}

// GetCustomers lists all customers
// @Summary List customers
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserResponse
// @Security ApiKeyAuth
// @Router /api/users/customers [get]
func (h *UserHandler) GetCustomers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsersByType(c.Context(), models.UserTypeCustomer)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(userResponses(users))
}

// GetAdmins lists all admins
// @Summary List admins
// @Tags Users
// @Produce json
// @Success 200 {array} models.UserResponse
// @Security ApiKeyAuth
// @Router /api/users/admins [get]
func (h *UserHandler) GetAdmins(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsersByType(c.Context(), models.UserTypeAdmin)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(userResponses(users))
}

// GetByID gets one user
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	user, err := h.userService.GetUser(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user.ToResponse())
}

// Patch partially updates a user
// @Summary Patch user
// @Description Update allowed fields of a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body map[string]string true "Fields to update"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} response.Problem
// @Failure 404 {object} response.Problem
// @Failure 409 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/users/{id} [patch]
func (h *UserHandler) Patch(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.userService.PatchUser(c.Context(), id, fields)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(user.ToResponse())
}

// Delete removes a user
// @Summary Delete user
// @Description Delete a user without active rentals, including their finished rental history
// @Tags Users
// @Param id path int true "User ID"
// @Success 204
// @Failure 400 {object} response.Problem
// @Failure 404 {object} response.Problem
// @Security ApiKeyAuth
// @Router /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return response.BadRequest(c, "Invalid id parameter")
	}

	if err := h.userService.DeleteUser(c.Context(), id); err != nil {
		return handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func userResponses(users []models.User) []models.UserResponse {
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToResponse())
	}
	return out
}

package response

import (
	"fulkoping-rental/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Problem is the structured error body returned for every failed request.
type Problem struct {
	Status int                     `json:"status"`
	Title  string                  `json:"title"`
	Detail string                  `json:"detail,omitempty"`
	Errors []domain.FieldViolation `json:"errors,omitempty"`
}

// Error sends a problem response with the standard title for the status code
func Error(c *fiber.Ctx, statusCode int, detail string) error {
	return c.Status(statusCode).JSON(Problem{
		Status: statusCode,
		Title:  utils.StatusMessage(statusCode),
		Detail: detail,
	})
}

// BadRequest sends a 400 bad request problem
func BadRequest(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusBadRequest, detail)
}

// Unauthorized sends a 401 unauthorized problem
func Unauthorized(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusUnauthorized, detail)
}

// Forbidden sends a 403 forbidden problem
func Forbidden(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusForbidden, detail)
}

// NotFound sends a 404 not found problem
func NotFound(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusNotFound, detail)
}

// Conflict sends a 409 conflict problem
func Conflict(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusConflict, detail)
}

// InternalServerError sends a 500 internal server error problem
func InternalServerError(c *fiber.Ctx, detail string) error {
	return Error(c, fiber.StatusInternalServerError, detail)
}

// ValidationFailed sends a 400 problem carrying per-field messages
func ValidationFailed(c *fiber.Ctx, violations []domain.FieldViolation) error {
	return c.Status(fiber.StatusBadRequest).JSON(Problem{
		Status: fiber.StatusBadRequest,
		Title:  "Validation Error",
		Detail: "Invalid fields in request",
		Errors: violations,
	})
}

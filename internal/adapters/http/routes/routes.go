package routes

import (
	"fulkoping-rental/internal/adapters/http/handlers"
	"fulkoping-rental/internal/adapters/http/middleware"
	"fulkoping-rental/internal/adapters/persistence/repositories"
	"fulkoping-rental/internal/config"
	"fulkoping-rental/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	rentalRepo := repositories.NewRentalRepository(db)

	// Initialize services
	rentalService := services.NewRentalService(db, rentalRepo, userRepo, vehicleRepo)
	userService := services.NewUserService(db, userRepo, rentalService)
	vehicleService := services.NewVehicleService(db, vehicleRepo, rentalService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	userHandler := handlers.NewUserHandler(userService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	rentalHandler := handlers.NewRentalHandler(rentalService)

	// Public routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Every /api route requires a valid API key
	api := app.Group("/api", middleware.APIKeyAuth(cfg))

	adminOnly := middleware.AdminOnly()
	anyRole := middleware.RequireRoles(config.RoleAdmin, config.RoleUser)

	// User routes (admin only)
	users := api.Group("/users", adminOnly)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.GetAll)
	users.Get("/customers", userHandler.GetCustomers)
	users.Get("/admins", userHandler.GetAdmins)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Patch)
	users.Delete("/:id", userHandler.Delete)

	// Vehicle routes (reads open to both roles, writes admin only)
	vehicles := api.Group("/vehicles")
	vehicles.Get("/", anyRole, vehicleHandler.GetAll)
	vehicles.Get("/cars", anyRole, vehicleHandler.GetCars)
	vehicles.Get("/trucks", anyRole, vehicleHandler.GetTrucks)
	vehicles.Get("/trailers", anyRole, vehicleHandler.GetTrailers)
	vehicles.Get("/:id", anyRole, vehicleHandler.GetByID)
	vehicles.Post("/", adminOnly, vehicleHandler.Create)
	vehicles.Patch("/:id/rent", adminOnly, vehicleHandler.UpdateRentStatus)
	vehicles.Delete("/:id", adminOnly, vehicleHandler.Delete)

	// Rental routes (admin only)
	rentals := api.Group("/rentals", adminOnly)
	rentals.Post("/", rentalHandler.Create)
	rentals.Get("/", rentalHandler.GetAll)
	rentals.Get("/history/users/:id", rentalHandler.HistoryByUser)
	rentals.Get("/history/vehicles/:id", rentalHandler.HistoryByVehicle)
	rentals.Get("/:id", rentalHandler.GetByID)
	rentals.Patch("/:id/return", rentalHandler.Return)
	rentals.Delete("/:id", rentalHandler.Delete)
}

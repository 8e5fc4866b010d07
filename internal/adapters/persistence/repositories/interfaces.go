package repositories

import (
	"context"

	"fulkoping-rental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserRepository defines user data access methods
type UserRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByType(ctx context.Context, userType string) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	// ExistsByEmail reports whether another user (id != excludeID) holds the email.
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsByEmployeeNumber(ctx context.Context, employeeNumber string, excludeID uint) (bool, error)
}

// VehicleRepository defines vehicle data access methods
type VehicleRepository interface {
	WithTx(tx *gorm.DB) VehicleRepository
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	List(ctx context.Context) ([]models.Vehicle, error)
	ListByType(ctx context.Context, vehicleType string) ([]models.Vehicle, error)
	Save(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id uint) error
	ExistsByRegistrationNumber(ctx context.Context, registrationNumber string, excludeID uint) (bool, error)
	// MarkRented flips is_rented to true only if it is currently false and
	// reports whether the flip happened. The conditional update is what
	// arbitrates concurrent rent attempts on the same vehicle.
	MarkRented(ctx context.Context, id uint) (bool, error)
	SetRented(ctx context.Context, id uint, rented bool) error
}

// RentalRepository defines rental data access methods
type RentalRepository interface {
	WithTx(tx *gorm.DB) RentalRepository
	Create(ctx context.Context, rental *models.Rental) error
	GetByID(ctx context.Context, id uint) (*models.Rental, error)
	List(ctx context.Context) ([]models.Rental, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Rental, error)
	ListByVehicle(ctx context.Context, vehicleID uint) ([]models.Rental, error)
	FindActiveByVehicle(ctx context.Context, vehicleID uint) (*models.Rental, error)
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	CountActiveByVehicle(ctx context.Context, vehicleID uint) (int64, error)
	Save(ctx context.Context, rental *models.Rental) error
	Delete(ctx context.Context, id uint) error
	DeleteFinishedByUser(ctx context.Context, userID uint) error
	DeleteFinishedByVehicle(ctx context.Context, vehicleID uint) error
}

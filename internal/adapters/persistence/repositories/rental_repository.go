package repositories

import (
	"context"

	"fulkoping-rental/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rentalRepository implements RentalRepository interface
type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository creates a new rental repository
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

// WithTx returns the repository bound to the given transaction
func (r *rentalRepository) WithTx(tx *gorm.DB) RentalRepository {
	return &rentalRepository{db: tx}
}

// Create inserts a new rental
func (r *rentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

// GetByID gets a rental by ID with its user loaded
func (r *rentalRepository) GetByID(ctx context.Context, id uint) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&rental).Error
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// List lists all rentals
func (r *rentalRepository) List(ctx context.Context) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&rentals).Error
	return rentals, err
}

// ListByUser lists all rentals for a user
func (r *rentalRepository) ListByUser(ctx context.Context, userID uint) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).Order("id").Find(&rentals).Error
	return rentals, err
}

// ListByVehicle lists all rentals for a vehicle
func (r *rentalRepository) ListByVehicle(ctx context.Context, vehicleID uint) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.WithContext(ctx).Preload("User").Where("vehicle_id = ?", vehicleID).Order("id").Find(&rentals).Error
	return rentals, err
}

// FindActiveByVehicle returns the vehicle's active rental, or
// gorm.ErrRecordNotFound when there is none. The lifecycle invariant keeps
// active rentals per vehicle at most one.
func (r *rentalRepository) FindActiveByVehicle(ctx context.Context, vehicleID uint) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).Preload("User").
		Where("vehicle_id = ? AND end_date_time IS NULL", vehicleID).
		First(&rental).Error
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// CountActiveByUser counts active rentals for a user
func (r *rentalRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rental{}).
		Where("user_id = ? AND end_date_time IS NULL", userID).
		Count(&count).Error
	return count, err
}

// CountActiveByVehicle counts active rentals for a vehicle
func (r *rentalRepository) CountActiveByVehicle(ctx context.Context, vehicleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rental{}).
		Where("vehicle_id = ? AND end_date_time IS NULL", vehicleID).
		Count(&count).Error
	return count, err
}

// Save persists changes to a rental. Associations are skipped so a loaded
// User is never written back.
func (r *rentalRepository) Save(ctx context.Context, rental *models.Rental) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rental).Error
}

// Delete removes a rental
func (r *rentalRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Rental{}, id).Error
}

// DeleteFinishedByUser removes every finished rental for a user
func (r *rentalRepository) DeleteFinishedByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND end_date_time IS NOT NULL", userID).
		Delete(&models.Rental{}).Error
}

// DeleteFinishedByVehicle removes every finished rental for a vehicle
func (r *rentalRepository) DeleteFinishedByVehicle(ctx context.Context, vehicleID uint) error {
	return r.db.WithContext(ctx).
		Where("vehicle_id = ? AND end_date_time IS NOT NULL", vehicleID).
		Delete(&models.Rental{}).Error
}

package repositories

import (
	"context"

	"fulkoping-rental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// vehicleRepository implements VehicleRepository interface
type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// WithTx returns the repository bound to the given transaction
func (r *vehicleRepository) WithTx(tx *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: tx}
}

// Create inserts a new vehicle
func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// GetByID gets a vehicle by ID
func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// List lists all vehicles
func (r *vehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).Order("id").Find(&vehicles).Error
	return vehicles, err
}

// ListByType lists vehicles of one variant (Car, Truck or Trailer)
func (r *vehicleRepository) ListByType(ctx context.Context, vehicleType string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).Where("type = ?", vehicleType).Order("id").Find(&vehicles).Error
	return vehicles, err
}

// Save persists changes to a vehicle
func (r *vehicleRepository) Save(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// Delete removes a vehicle
func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Vehicle{}, id).Error
}

// ExistsByRegistrationNumber checks whether another vehicle already holds the registration number
func (r *vehicleRepository) ExistsByRegistrationNumber(ctx context.Context, registrationNumber string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("registration_number = ? AND id <> ?", registrationNumber, excludeID).
		Count(&count).Error
	return count > 0, err
}

// MarkRented claims the vehicle for a new rental. The WHERE clause makes the
// read-then-write atomic: of two competing rent attempts only one update
// matches a row, the other sees zero rows affected and must fail.
func (r *vehicleRepository) MarkRented(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ? AND is_rented = ?", id, false).
		Update("is_rented", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetRented sets the rented flag unconditionally
func (r *vehicleRepository) SetRented(ctx context.Context, id uint, rented bool) error {
	return r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", id).
		Update("is_rented", rented).Error
}

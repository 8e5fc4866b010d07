package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"fulkoping-rental/internal/adapters/persistence/models"
	"fulkoping-rental/internal/adapters/persistence/repositories"
	"fulkoping-rental/internal/core/domain"
	"fulkoping-rental/internal/pkg/validation"

	"gorm.io/gorm"
)

// CreateVehicleInput is the payload for registering a new vehicle
type CreateVehicleInput struct {
	Type                string  `json:"type" validate:"required"`
	RegistrationNumber  string  `json:"registrationNumber" validate:"required"`
	Brand               string  `json:"brand" validate:"required"`
	Model               string  `json:"model" validate:"required"`
	IsRented            bool    `json:"isRented"`
	SeatCount           *int    `json:"seatCount" validate:"omitempty,min=1,max=9"`
	MaxWeight           *int    `json:"maxWeight" validate:"omitempty,min=1,max=750"`
	DrivingLicenseLevel *string `json:"drivingLicenseLevel"`
}

// VehicleService handles the vehicle fleet
type VehicleService struct {
	db          *gorm.DB
	vehicleRepo repositories.VehicleRepository
	rentals     *RentalService
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(db *gorm.DB, vehicleRepo repositories.VehicleRepository, rentals *RentalService) *VehicleService {
	return &VehicleService{
		db:          db,
		vehicleRepo: vehicleRepo,
		rentals:     rentals,
	}
}

// CreateVehicle registers a new vehicle of the given type
func (s *VehicleService) CreateVehicle(ctx context.Context, input CreateVehicleInput) (*models.Vehicle, error) {
	vehicleType, err := resolveVehicleType(input.Type)
	if err != nil {
		return nil, err
	}

	if violations := validation.Struct(input); len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}
	if violations := vehicleVariantViolations(vehicleType, input); len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	exists, err := s.vehicleRepo.ExistsByRegistrationNumber(ctx, input.RegistrationNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.ConflictError{Field: "registrationNumber"}
	}

	vehicle := &models.Vehicle{
		Type:               vehicleType,
		RegistrationNumber: input.RegistrationNumber,
		Brand:              input.Brand,
		Model:              input.Model,
		IsRented:           input.IsRented,
	}
	switch vehicleType {
	case models.VehicleTypeCar:
		vehicle.SeatCount = input.SeatCount
	case models.VehicleTypeTruck:
		vehicle.DrivingLicenseLevel = input.DrivingLicenseLevel
	case models.VehicleTypeTrailer:
		vehicle.MaxWeight = input.MaxWeight
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	log.Printf("Created new %s with registration number %s", vehicle.Type, vehicle.RegistrationNumber)
	return vehicle, nil
}

// GetAllVehicles lists every vehicle in the fleet
func (s *VehicleService) GetAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicleRepo.List(ctx)
}

// GetAllVehiclesByType lists vehicles of one type
func (s *VehicleService) GetAllVehiclesByType(ctx context.Context, vehicleType string) ([]models.Vehicle, error) {
	return s.vehicleRepo.ListByType(ctx, vehicleType)
}

// GetVehicle gets a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

// UpdateRentStatus sets the rented flag directly. Marking a vehicle as not
// rented closes its active rental if one exists; marking it as rented does
// NOT create a rental, it only blocks the vehicle from being rented out.
func (s *VehicleService) UpdateRentStatus(ctx context.Context, id uint, rented bool) (*models.Vehicle, error) {
	var vehicle *models.Vehicle

	err := s.db.Transaction(func(tx *gorm.DB) error {
		v, err := s.vehicleRepo.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrVehicleNotFound
			}
			return err
		}

		if !rented {
			if err := s.rentals.EndActiveRental(ctx, tx, id); err != nil {
				return err
			}
		}

		v.IsRented = rented
		if err := s.vehicleRepo.WithTx(tx).Save(ctx, v); err != nil {
			return err
		}

		vehicle = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Updated rent status of vehicle %s to %t", vehicle.RegistrationNumber, rented)
	return vehicle, nil
}

// DeleteVehicle removes a vehicle and its finished rental history. Refused
// while the vehicle has an active rental.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id uint) error {
	if _, err := s.GetVehicle(ctx, id); err != nil {
		return err
	}

	active, err := s.rentals.VehicleHasActiveRental(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return domain.ErrVehicleHasActiveRental
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.rentals.DeleteFinishedRentalsByVehicle(ctx, tx, id); err != nil {
			return err
		}
		return s.vehicleRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("Deleted vehicle (id=%d) and its rental history", id)
	return nil
}

func resolveVehicleType(raw string) (string, error) {
	switch strings.ToLower(raw) {
	case "car":
		return models.VehicleTypeCar, nil
	case "truck":
		return models.VehicleTypeTruck, nil
	case "trailer":
		return models.VehicleTypeTrailer, nil
	default:
		return "", domain.ErrUnknownVehicleType
	}
}

// vehicleVariantViolations checks the field each vehicle type requires
func vehicleVariantViolations(vehicleType string, input CreateVehicleInput) []domain.FieldViolation {
	var violations []domain.FieldViolation
	switch vehicleType {
	case models.VehicleTypeCar:
		if input.SeatCount == nil {
			violations = append(violations, domain.FieldViolation{Field: "seatCount", Message: "must not be null"})
		}
	case models.VehicleTypeTruck:
		if input.DrivingLicenseLevel == nil || strings.TrimSpace(*input.DrivingLicenseLevel) == "" {
			violations = append(violations, domain.FieldViolation{Field: "drivingLicenseLevel", Message: "must not be blank"})
		}
	case models.VehicleTypeTrailer:
		if input.MaxWeight == nil {
			violations = append(violations, domain.FieldViolation{Field: "maxWeight", Message: "must not be null"})
		}
	}
	return violations
}

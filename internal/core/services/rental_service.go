package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fulkoping-rental/internal/adapters/persistence/models"
	"fulkoping-rental/internal/adapters/persistence/repositories"
	"fulkoping-rental/internal/core/domain"

	"gorm.io/gorm"
)

// RentalService owns the rental lifecycle. It is the only writer of a
// vehicle's is_rented flag and the only place rentals are created, so the
// invariant "is_rented iff one active rental" is enforced here alone.
type RentalService struct {
	db          *gorm.DB
	rentalRepo  repositories.RentalRepository
	userRepo    repositories.UserRepository
	vehicleRepo repositories.VehicleRepository
}

// NewRentalService creates a new rental service
func NewRentalService(
	db *gorm.DB,
	rentalRepo repositories.RentalRepository,
	userRepo repositories.UserRepository,
	vehicleRepo repositories.VehicleRepository,
) *RentalService {
	return &RentalService{
		db:          db,
		rentalRepo:  rentalRepo,
		userRepo:    userRepo,
		vehicleRepo: vehicleRepo,
	}
}

// CreateRental rents a vehicle out to a user. The vehicle claim and the
// rental insert run in one transaction; the conditional claim re-verifies
// is_rented at write time, so two competing requests for the same vehicle
// cannot both succeed.
func (s *RentalService) CreateRental(ctx context.Context, userID, vehicleID uint) (*models.Rental, error) {
	var rental *models.Rental

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.WithTx(tx).GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		vehicle, err := s.vehicleRepo.WithTx(tx).GetByID(ctx, vehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrVehicleNotFound
			}
			return err
		}

		if vehicle.IsRented {
			log.Printf("Attempted to create rental for vehicle %s that is already rented", vehicle.RegistrationNumber)
			return domain.ErrVehicleAlreadyRented
		}

		claimed, err := s.vehicleRepo.WithTx(tx).MarkRented(ctx, vehicleID)
		if err != nil {
			return err
		}
		if !claimed {
			// Lost the race against a concurrent rent of the same vehicle.
			return domain.ErrVehicleAlreadyRented
		}

		rental = &models.Rental{
			UserID:                    user.ID,
			VehicleID:                 vehicle.ID,
			VehicleRegistrationNumber: vehicle.RegistrationNumber,
			VehicleType:               vehicle.Type,
			StartDateTime:             time.Now(),
		}
		if err := s.rentalRepo.WithTx(tx).Create(ctx, rental); err != nil {
			return err
		}
		rental.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created new rental (id=%d) for userId=%d and vehicleId=%d", rental.ID, userID, vehicleID)
	return rental, nil
}

// ReturnRental registers the return of a rental: sets the end timestamp and
// frees the vehicle, both in one transaction.
func (s *RentalService) ReturnRental(ctx context.Context, rentalID uint) (*models.Rental, error) {
	var rental *models.Rental

	err := s.db.Transaction(func(tx *gorm.DB) error {
		r, err := s.rentalRepo.WithTx(tx).GetByID(ctx, rentalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRentalNotFound
			}
			return err
		}

		if !r.IsActive() {
			log.Printf("Attempted to return rental (id=%d) that is already returned", rentalID)
			return domain.ErrRentalAlreadyReturned
		}

		now := time.Now()
		r.EndDateTime = &now
		if err := s.rentalRepo.WithTx(tx).Save(ctx, r); err != nil {
			return err
		}

		if err := s.vehicleRepo.WithTx(tx).SetRented(ctx, r.VehicleID, false); err != nil {
			return err
		}

		rental = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Rental (id=%d) returned for vehicleId=%d by userId=%d", rental.ID, rental.VehicleID, rental.UserID)
	return rental, nil
}

// DeleteRental removes a rental. A still-active rental frees its vehicle
// first; the vehicle update and the delete are all-or-nothing.
func (s *RentalService) DeleteRental(ctx context.Context, rentalID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		r, err := s.rentalRepo.WithTx(tx).GetByID(ctx, rentalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRentalNotFound
			}
			return err
		}

		if r.IsActive() {
			if err := s.vehicleRepo.WithTx(tx).SetRented(ctx, r.VehicleID, false); err != nil {
				return err
			}
		}

		return s.rentalRepo.WithTx(tx).Delete(ctx, rentalID)
	})
	if err != nil {
		return err
	}

	log.Printf("Deleted rental (id=%d)", rentalID)
	return nil
}

// DeleteFinishedRentalsByUser removes every finished rental for a user as
// part of the caller's transaction. Deleting a user cascades through here so
// no orphaned history outlives the user. No-op when none exist.
func (s *RentalService) DeleteFinishedRentalsByUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	if tx == nil {
		tx = s.db
	}
	if err := s.rentalRepo.WithTx(tx).DeleteFinishedByUser(ctx, userID); err != nil {
		return err
	}
	log.Printf("Deleted finished rentals for userId=%d", userID)
	return nil
}

// DeleteFinishedRentalsByVehicle removes every finished rental for a vehicle
// as part of the caller's transaction. No-op when none exist.
func (s *RentalService) DeleteFinishedRentalsByVehicle(ctx context.Context, tx *gorm.DB, vehicleID uint) error {
	if tx == nil {
		tx = s.db
	}
	if err := s.rentalRepo.WithTx(tx).DeleteFinishedByVehicle(ctx, vehicleID); err != nil {
		return err
	}
	log.Printf("Deleted finished rentals for vehicleId=%d", vehicleID)
	return nil
}

// EndActiveRental closes the vehicle's active rental, if any, inside the
// caller's transaction. This is the one path that finishes a rental without
// an explicit return call; it relies on the invariant that a vehicle never
// has more than one active rental.
func (s *RentalService) EndActiveRental(ctx context.Context, tx *gorm.DB, vehicleID uint) error {
	if tx == nil {
		tx = s.db
	}

	rental, err := s.rentalRepo.WithTx(tx).FindActiveByVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	rental.EndDateTime = &now
	if err := s.rentalRepo.WithTx(tx).Save(ctx, rental); err != nil {
		return err
	}

	log.Printf("Active rental (id=%d) ended automatically for vehicleId=%d", rental.ID, vehicleID)
	return nil
}

// UserHasActiveRental reports whether the user has any active rental
func (s *RentalService) UserHasActiveRental(ctx context.Context, userID uint) (bool, error) {
	count, err := s.rentalRepo.CountActiveByUser(ctx, userID)
	return count > 0, err
}

// VehicleHasActiveRental reports whether the vehicle has any active rental
func (s *RentalService) VehicleHasActiveRental(ctx context.Context, vehicleID uint) (bool, error) {
	count, err := s.rentalRepo.CountActiveByVehicle(ctx, vehicleID)
	return count > 0, err
}

// GetRental gets a rental by ID
func (s *RentalService) GetRental(ctx context.Context, rentalID uint) (*models.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, err
	}
	return rental, nil
}

// GetAllRentals lists every rental in the system
func (s *RentalService) GetAllRentals(ctx context.Context) ([]models.Rental, error) {
	return s.rentalRepo.List(ctx)
}

// GetHistoryForUser returns all rentals for a user. The user must exist even
// when the history is empty.
func (s *RentalService) GetHistoryForUser(ctx context.Context, userID uint) ([]models.Rental, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return s.rentalRepo.ListByUser(ctx, userID)
}

// GetHistoryForVehicle returns all rentals for a vehicle. The vehicle must
// exist even when the history is empty.
func (s *RentalService) GetHistoryForVehicle(ctx context.Context, vehicleID uint) ([]models.Rental, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return s.rentalRepo.ListByVehicle(ctx, vehicleID)
}

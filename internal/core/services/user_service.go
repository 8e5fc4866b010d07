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

// CreateUserInput is the payload for registering a new user
type CreateUserInput struct {
	Type           string  `json:"type" validate:"required"`
	FirstName      string  `json:"firstName" validate:"required,min=2,max=20"`
	LastName       string  `json:"lastName" validate:"required,min=2,max=20"`
	Email          string  `json:"email" validate:"required,email"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,phone"`
	EmployeeNumber *string `json:"employeeNumber" validate:"omitempty,empno"`
}

// UserService handles users and their two variants
type UserService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	rentals  *RentalService
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, userRepo repositories.UserRepository, rentals *RentalService) *UserService {
	return &UserService{
		db:       db,
		userRepo: userRepo,
		rentals:  rentals,
	}
}

// CreateUser registers a new admin or customer
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	userType, err := resolveUserType(input.Type)
	if err != nil {
		return nil, err
	}

	if violations := validation.Struct(input); len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}
	if violations := userVariantViolations(userType, input); len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.ConflictError{Field: "email"}
	}

	user := &models.User{
		Type:      userType,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}
	switch userType {
	case models.UserTypeAdmin:
		exists, err := s.userRepo.ExistsByEmployeeNumber(ctx, *input.EmployeeNumber, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &domain.ConflictError{Field: "employeeNumber"}
		}
		user.EmployeeNumber = input.EmployeeNumber
	case models.UserTypeCustomer:
		user.PhoneNumber = input.PhoneNumber
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("Created new %s %s %s", user.Type, user.FirstName, user.LastName)
	return user, nil
}

// GetAllUsers lists every user
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetAllUsersByType lists users of one variant
func (s *UserService) GetAllUsersByType(ctx context.Context, userType string) ([]models.User, error) {
	return s.userRepo.ListByType(ctx, userType)
}

// GetUser gets a user by ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// PatchUser applies a partial update. Only a per-variant allow-list of
// fields may change; every provided value is validated against the same
// rules as on create, and an email change re-checks uniqueness.
func (s *UserService) PatchUser(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	values, err := ValidatePatchFields(user, fields)
	if err != nil {
		return nil, err
	}

	if email, ok := values["email"]; ok && email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, email, user.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &domain.ConflictError{Field: "email"}
		}
	}

	applyPatchFields(user, values)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("Updated user (id=%d)", user.ID)
	return user, nil
}

// DeleteUser removes a user and their finished rental history. Refused while
// the user has an active rental.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	active, err := s.rentals.UserHasActiveRental(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return domain.ErrUserHasActiveRental
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.rentals.DeleteFinishedRentalsByUser(ctx, tx, id); err != nil {
			return err
		}
		return s.userRepo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Printf("Deleted user (id=%d) and their rental history", id)
	return nil
}

func resolveUserType(raw string) (string, error) {
	switch strings.ToLower(raw) {
	case "admin":
		return models.UserTypeAdmin, nil
	case "customer":
		return models.UserTypeCustomer, nil
	default:
		return "", domain.ErrUnknownUserType
	}
}

// userVariantViolations checks the fields each user type requires
func userVariantViolations(userType string, input CreateUserInput) []domain.FieldViolation {
	var violations []domain.FieldViolation
	switch userType {
	case models.UserTypeAdmin:
		if input.EmployeeNumber == nil {
			violations = append(violations, domain.FieldViolation{Field: "employeeNumber", Message: "must not be null"})
		}
	case models.UserTypeCustomer:
		if input.PhoneNumber == nil {
			violations = append(violations, domain.FieldViolation{Field: "phoneNumber", Message: "must not be null"})
		}
	}
	return violations
}

func applyPatchFields(user *models.User, values map[string]string) {
	for field, value := range values {
		switch field {
		case "firstName":
			user.FirstName = value
		case "lastName":
			user.LastName = value
		case "email":
			user.Email = value
		case "phoneNumber":
			v := value
			user.PhoneNumber = &v
		}
	}
}

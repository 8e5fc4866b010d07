package models

import (
	"time"

	"gorm.io/gorm"
)

// User type discriminators as they appear on the wire.
const (
	UserTypeAdmin    = "Admin"
	UserTypeCustomer = "Customer"
)

// Vehicle type discriminators as they appear on the wire.
const (
	VehicleTypeCar     = "Car"
	VehicleTypeTruck   = "Truck"
	VehicleTypeTrailer = "Trailer"
)

// User represents the users table. Admin and Customer share one table with a
// type discriminator; the variant-specific columns are nullable.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Type           string    `gorm:"size:20;not null" json:"type"`
	FirstName      string    `gorm:"size:20;not null" json:"first_name"`
	LastName       string    `gorm:"size:20;not null" json:"last_name"`
	Email          string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber    *string   `gorm:"size:20" json:"phone_number"`
	EmployeeNumber *string   `gorm:"uniqueIndex;size:10" json:"employee_number"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

func (u *User) IsCustomer() bool {
	return u.Type == UserTypeCustomer
}

// UserResponse DTO. Variant-only fields are omitted for the other variant.
type UserResponse struct {
	ID             uint    `json:"id"`
	Type           string  `json:"type"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	EmployeeNumber *string `json:"employeeNumber,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Type:           u.Type,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		EmployeeNumber: u.EmployeeNumber,
	}
}

// Vehicle represents the vehicles table. Car, Truck and Trailer share one
// table with a type discriminator; the variant-specific columns are nullable.
// IsRented is owned by the rental lifecycle: it is true iff the vehicle has an
// active rental, and only the rental service mutates it.
type Vehicle struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Type                string    `gorm:"size:20;not null" json:"type"`
	RegistrationNumber  string    `gorm:"uniqueIndex;size:20;not null" json:"registration_number"`
	Brand               string    `gorm:"size:50;not null" json:"brand"`
	Model               string    `gorm:"size:50;not null" json:"model"`
	IsRented            bool      `gorm:"not null;default:false" json:"is_rented"`
	SeatCount           *int      `json:"seat_count"`
	MaxWeight           *int      `json:"max_weight"`
	DrivingLicenseLevel *string   `gorm:"size:10" json:"driving_license_level"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// VehicleResponse DTO
type VehicleResponse struct {
	ID                  uint    `json:"id"`
	Type                string  `json:"type"`
	RegistrationNumber  string  `json:"registrationNumber"`
	Brand               string  `json:"brand"`
	Model               string  `json:"model"`
	IsRented            bool    `json:"isRented"`
	SeatCount           *int    `json:"seatCount,omitempty"`
	MaxWeight           *int    `json:"maxWeight,omitempty"`
	DrivingLicenseLevel *string `json:"drivingLicenseLevel,omitempty"`
}

func (v *Vehicle) ToResponse() *VehicleResponse {
	return &VehicleResponse{
		ID:                  v.ID,
		Type:                v.Type,
		RegistrationNumber:  v.RegistrationNumber,
		Brand:               v.Brand,
		Model:               v.Model,
		IsRented:            v.IsRented,
		SeatCount:           v.SeatCount,
		MaxWeight:           v.MaxWeight,
		DrivingLicenseLevel: v.DrivingLicenseLevel,
	}
}

// Rental represents the rentals table. The vehicle registration number and
// type are snapshots taken at creation time and never refreshed, so the
// history stays accurate even if the vehicle is edited later.
type Rental struct {
	ID                        uint       `gorm:"primaryKey" json:"id"`
	UserID                    uint       `gorm:"not null;index" json:"user_id"`
	VehicleID                 uint       `gorm:"not null;index" json:"vehicle_id"`
	VehicleRegistrationNumber string     `gorm:"size:20;not null" json:"vehicle_registration_number"`
	VehicleType               string     `gorm:"size:20;not null" json:"vehicle_type"`
	StartDateTime             time.Time  `gorm:"not null" json:"start_date_time"`
	EndDateTime               *time.Time `json:"end_date_time"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Rental) TableName() string {
	return "rentals"
}

// IsActive reports whether the rental has not been returned yet.
func (r *Rental) IsActive() bool {
	return r.EndDateTime == nil
}

// RentalResponse DTO
type RentalResponse struct {
	ID                        uint       `json:"id"`
	UserID                    uint       `json:"userId"`
	UserFirstName             string     `json:"userFirstName"`
	UserLastName              string     `json:"userLastName"`
	VehicleID                 uint       `json:"vehicleId"`
	VehicleRegistrationNumber string     `json:"vehicleRegistrationNumber"`
	VehicleType               string     `json:"vehicleType"`
	StartDateTime             time.Time  `json:"startDateTime"`
	EndDateTime               *time.Time `json:"endDateTime"`
}

func (r *Rental) ToResponse() *RentalResponse {
	resp := &RentalResponse{
		ID:                        r.ID,
		UserID:                    r.UserID,
		VehicleID:                 r.VehicleID,
		VehicleRegistrationNumber: r.VehicleRegistrationNumber,
		VehicleType:               r.VehicleType,
		StartDateTime:             r.StartDateTime,
		EndDateTime:               r.EndDateTime,
	}

	if r.User != nil {
		resp.UserFirstName = r.User.FirstName
		resp.UserLastName = r.User.LastName
	}

	return resp
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Vehicle{},
		&Rental{},
	)
}

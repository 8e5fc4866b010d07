package config

import (
	"log"

	"fulkoping-rental/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDemoData(); err != nil {
		log.Printf("⚠️ Demo data seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDemoData seeds a small demo fleet and two users
// This is for development/testing only
func (s *Seeder) seedDemoData() error {
	// Skip when the database already has users
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	employeeNumber := "ABCDEF1"
	phoneNumber := "+46701234567"
	seatCount := 5
	maxWeight := 450
	licenseLevel := "C"

	users := []models.User{
		{
			Type:           models.UserTypeAdmin,
			FirstName:      "Anna",
			LastName:       "Andersson",
			Email:          "anna.andersson@fulkoping.se",
			EmployeeNumber: &employeeNumber,
		},
		{
			Type:        models.UserTypeCustomer,
			FirstName:   "Björn",
			LastName:    "Berg",
			Email:       "bjorn.berg@example.com",
			PhoneNumber: &phoneNumber,
		},
	}
	if err := s.db.Create(&users).Error; err != nil {
		return err
	}

	vehicles := []models.Vehicle{
		{
			Type:               models.VehicleTypeCar,
			RegistrationNumber: "ABC123",
			Brand:              "Volvo",
			Model:              "V60",
			SeatCount:          &seatCount,
		},
		{
			Type:                models.VehicleTypeTruck,
			RegistrationNumber:  "DEF456",
			Brand:               "Scania",
			Model:               "R450",
			DrivingLicenseLevel: &licenseLevel,
		},
		{
			Type:               models.VehicleTypeTrailer,
			RegistrationNumber: "GHI789",
			Brand:              "Thule",
			Model:              "T300",
			MaxWeight:          &maxWeight,
		},
	}
	if err := s.db.Create(&vehicles).Error; err != nil {
		return err
	}

	log.Printf("🚗 Seeded %d demo users and %d demo vehicles", len(users), len(vehicles))
	return nil
}

package services

import (
	"context"
	"testing"

	"fulkoping-rental/internal/adapters/persistence/models"
	"fulkoping-rental/internal/adapters/persistence/repositories"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the schema migrated.
// MaxOpenConns is pinned to 1 so every connection sees the same memory db.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

type testServices struct {
	db       *gorm.DB
	users    *UserService
	vehicles *VehicleService
	rentals  *RentalService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := newTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	rentalRepo := repositories.NewRentalRepository(db)

	rentals := NewRentalService(db, rentalRepo, userRepo, vehicleRepo)
	return &testServices{
		db:       db,
		users:    NewUserService(db, userRepo, rentals),
		vehicles: NewVehicleService(db, vehicleRepo, rentals),
		rentals:  rentals,
	}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func (ts *testServices) createCustomer(t *testing.T, email string) *models.User {
	t.Helper()

	user, err := ts.users.CreateUser(context.Background(), CreateUserInput{
		Type:        "customer",
		FirstName:   "Karin",
		LastName:    "Larsson",
		Email:       email,
		PhoneNumber: strPtr("+46701234567"),
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return user
}

func (ts *testServices) createAdmin(t *testing.T, email, employeeNumber string) *models.User {
	t.Helper()

	user, err := ts.users.CreateUser(context.Background(), CreateUserInput{
		Type:           "admin",
		FirstName:      "Anna",
		LastName:       "Andersson",
		Email:          email,
		EmployeeNumber: strPtr(employeeNumber),
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return user
}

func (ts *testServices) createCar(t *testing.T, registrationNumber string) *models.Vehicle {
	t.Helper()

	vehicle, err := ts.vehicles.CreateVehicle(context.Background(), CreateVehicleInput{
		Type:               "car",
		RegistrationNumber: registrationNumber,
		Brand:              "Volvo",
		Model:              "V60",
		SeatCount:          intPtr(5),
	})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	return vehicle
}

// assertVehicleRented checks the persisted rented flag against the presence
// of an active rental for that vehicle.
func (ts *testServices) assertVehicleRented(t *testing.T, vehicleID uint, want bool) {
	t.Helper()

	vehicle, err := ts.vehicles.GetVehicle(context.Background(), vehicleID)
	if err != nil {
		t.Fatalf("get vehicle: %v", err)
	}
	if vehicle.IsRented != want {
		t.Fatalf("vehicle %d rented flag = %t, want %t", vehicleID, vehicle.IsRented, want)
	}

	active, err := ts.rentals.VehicleHasActiveRental(context.Background(), vehicleID)
	if err != nil {
		t.Fatalf("count active rentals: %v", err)
	}
	if active != want {
		t.Fatalf("vehicle %d has active rental = %t, want %t", vehicleID, active, want)
	}
}

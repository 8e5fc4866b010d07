package services

import (
	"context"
	"errors"
	"testing"

	"fulkoping-rental/internal/core/domain"
)

func TestCreateVehicleVariants(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	car, err := ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
		Type:               "car",
		RegistrationNumber: "ABC123",
		Brand:              "Volvo",
		Model:              "V60",
		SeatCount:          intPtr(5),
	})
	if err != nil {
		t.Fatalf("create car: %v", err)
	}
	if car.Type != "Car" || car.SeatCount == nil || *car.SeatCount != 5 {
		t.Errorf("unexpected car: %+v", car)
	}

	truck, err := ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
		Type:                "TRUCK",
		RegistrationNumber:  "DEF456",
		Brand:               "Scania",
		Model:               "R450",
		DrivingLicenseLevel: strPtr("C"),
	})
	if err != nil {
		t.Fatalf("create truck: %v", err)
	}
	if truck.Type != "Truck" {
		t.Errorf("truck type = %q, want Truck (case-insensitive discriminator)", truck.Type)
	}
	if truck.DrivingLicenseLevel == nil || *truck.DrivingLicenseLevel != "C" {
		t.Errorf("unexpected truck: %+v", truck)
	}
	if truck.MaxWeight != nil {
		t.Error("truck should not carry a max weight")
	}

	trailer, err := ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
		Type:               "trailer",
		RegistrationNumber: "GHI789",
		Brand:              "Thule",
		Model:              "T300",
		MaxWeight:          intPtr(450),
	})
	if err != nil {
		t.Fatalf("create trailer: %v", err)
	}
	if trailer.MaxWeight == nil || *trailer.MaxWeight != 450 {
		t.Errorf("unexpected trailer: %+v", trailer)
	}
	if trailer.DrivingLicenseLevel != nil {
		t.Error("trailer should not carry a driving license level")
	}
}

func TestCreateVehicleUnknownType(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.vehicles.CreateVehicle(context.Background(), CreateVehicleInput{
		Type:               "boat",
		RegistrationNumber: "ABC123",
		Brand:              "Nimbus",
		Model:              "T8",
	})
	if !errors.Is(err, domain.ErrUnknownVehicleType) {
		t.Errorf("got %v, want ErrUnknownVehicleType", err)
	}
}

func TestCreateVehicleMissingVariantField(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
		Type:               "car",
		RegistrationNumber: "ABC123",
		Brand:              "Volvo",
		Model:              "V60",
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "seatCount" {
		t.Errorf("unexpected violations: %+v", verr.Violations)
	}

	_, err = ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
		Type:               "trailer",
		RegistrationNumber: "ABC123",
		Brand:              "Thule",
		Model:              "T300",
	})
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "maxWeight" {
		t.Errorf("unexpected violations: %+v", verr.Violations)
	}

	// A truck needs a non-blank license level; a missing or blank value is
	// reported the same way.
	for _, level := range []*string{nil, strPtr("  ")} {
		_, err = ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
			Type:                "truck",
			RegistrationNumber:  "ABC123",
			Brand:               "Scania",
			Model:               "R450",
			DrivingLicenseLevel: level,
		})
		if !errors.As(err, &verr) {
			t.Fatalf("got %v, want ValidationError", err)
		}
		if len(verr.Violations) != 1 || verr.Violations[0].Field != "drivingLicenseLevel" {
			t.Errorf("unexpected violations: %+v", verr.Violations)
		}
		if verr.Violations[0].Message != "must not be blank" {
			t.Errorf("message = %q, want must not be blank", verr.Violations[0].Message)
		}
	}
}

func TestCreateTruckIgnoresForeignVariantFields(t *testing.T) {
	ts := newTestServices(t)

	truck, err := ts.vehicles.CreateVehicle(context.Background(), CreateVehicleInput{
		Type:                "truck",
		RegistrationNumber:  "DEF456",
		Brand:               "Scania",
		Model:               "R450",
		DrivingLicenseLevel: strPtr("C"),
		MaxWeight:           intPtr(450),
		SeatCount:           intPtr(2),
	})
	if err != nil {
		t.Fatalf("create truck: %v", err)
	}
	if truck.MaxWeight != nil || truck.SeatCount != nil {
		t.Errorf("truck kept foreign variant fields: %+v", truck)
	}
	if truck.DrivingLicenseLevel == nil || *truck.DrivingLicenseLevel != "C" {
		t.Errorf("truck lost its license level: %+v", truck)
	}
}

func TestCreateVehicleSeatCountBounds(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.vehicles.CreateVehicle(context.Background(), CreateVehicleInput{
		Type:               "car",
		RegistrationNumber: "ABC123",
		Brand:              "Volvo",
		Model:              "V60",
		SeatCount:          intPtr(12),
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(verr.Violations) != 1 || verr.Violations[0].Field != "seatCount" {
		t.Errorf("unexpected violations: %+v", verr.Violations)
	}
}

func TestCreateVehicleDuplicateRegistration(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ts.createCar(t, "ABC123")

	_, err := ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
		Type:                "truck",
		RegistrationNumber:  "ABC123",
		Brand:               "Scania",
		Model:               "R450",
		DrivingLicenseLevel: strPtr("C"),
	})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.Field != "registrationNumber" {
		t.Errorf("conflict field = %q, want registrationNumber", conflict.Field)
	}
}

func TestGetAllVehiclesByType(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ts.createCar(t, "ABC123")
	ts.createCar(t, "DEF456")
	if _, err := ts.vehicles.CreateVehicle(ctx, CreateVehicleInput{
		Type:                "truck",
		RegistrationNumber:  "GHI789",
		Brand:               "Scania",
		Model:               "R450",
		DrivingLicenseLevel: strPtr("C"),
	}); err != nil {
		t.Fatalf("create truck: %v", err)
	}

	cars, err := ts.vehicles.GetAllVehiclesByType(ctx, "Car")
	if err != nil {
		t.Fatalf("list cars: %v", err)
	}
	if len(cars) != 2 {
		t.Errorf("car count = %d, want 2", len(cars))
	}

	trailers, err := ts.vehicles.GetAllVehiclesByType(ctx, "Trailer")
	if err != nil {
		t.Fatalf("list trailers: %v", err)
	}
	if len(trailers) != 0 {
		t.Errorf("trailer count = %d, want 0", len(trailers))
	}
}

func TestUpdateRentStatusClearClosesActiveRental(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	user := ts.createCustomer(t, "karin@example.com")
	car := ts.createCar(t, "ABC123")

	rental, err := ts.rentals.CreateRental(ctx, user.ID, car.ID)
	if err != nil {
		t.Fatalf("create rental: %v", err)
	}

	vehicle, err := ts.vehicles.UpdateRentStatus(ctx, car.ID, false)
	if err != nil {
		t.Fatalf("clear rent status: %v", err)
	}
	if vehicle.IsRented {
		t.Error("vehicle should not be rented")
	}

	got, err := ts.rentals.GetRental(ctx, rental.ID)
	if err != nil {
		t.Fatalf("get rental: %v", err)
	}
	if got.IsActive() {
		t.Error("active rental should have been closed")
	}

	ts.assertVehicleRented(t, car.ID, false)
}

func TestUpdateRentStatusSetCreatesNoRental(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	car := ts.createCar(t, "ABC123")

	vehicle, err := ts.vehicles.UpdateRentStatus(ctx, car.ID, true)
	if err != nil {
		t.Fatalf("set rent status: %v", err)
	}
	if !vehicle.IsRented {
		t.Error("vehicle should be rented")
	}

	rentals, err := ts.rentals.GetAllRentals(ctx)
	if err != nil {
		t.Fatalf("list rentals: %v", err)
	}
	if len(rentals) != 0 {
		t.Errorf("rental count = %d, want 0 (flag set creates no rental)", len(rentals))
	}
}

func TestUpdateRentStatusIdempotent(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	car := ts.createCar(t, "ABC123")

	// Clearing an already-clear flag and setting an already-set flag both
	// succeed without side effects.
	if _, err := ts.vehicles.UpdateRentStatus(ctx, car.ID, false); err != nil {
		t.Fatalf("clear clear: %v", err)
	}
	if _, err := ts.vehicles.UpdateRentStatus(ctx, car.ID, true); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := ts.vehicles.UpdateRentStatus(ctx, car.ID, true); err != nil {
		t.Fatalf("set set: %v", err)
	}
}

func TestDeleteVehicleWithActiveRentalRefused(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	user := ts.createCustomer(t, "karin@example.com")
	car := ts.createCar(t, "ABC123")

	if _, err := ts.rentals.CreateRental(ctx, user.ID, car.ID); err != nil {
		t.Fatalf("create rental: %v", err)
	}

	if err := ts.vehicles.DeleteVehicle(ctx, car.ID); !errors.Is(err, domain.ErrVehicleHasActiveRental) {
		t.Errorf("got %v, want ErrVehicleHasActiveRental", err)
	}

	if _, err := ts.vehicles.GetVehicle(ctx, car.ID); err != nil {
		t.Errorf("vehicle should survive refused delete: %v", err)
	}
}

func TestDeleteVehicleCascadesFinishedRentals(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	user := ts.createCustomer(t, "karin@example.com")
	car := ts.createCar(t, "ABC123")

	rental, err := ts.rentals.CreateRental(ctx, user.ID, car.ID)
	if err != nil {
		t.Fatalf("create rental: %v", err)
	}
	if _, err := ts.rentals.ReturnRental(ctx, rental.ID); err != nil {
		t.Fatalf("return rental: %v", err)
	}

	if err := ts.vehicles.DeleteVehicle(ctx, car.ID); err != nil {
		t.Fatalf("delete vehicle: %v", err)
	}

	if _, err := ts.vehicles.GetVehicle(ctx, car.ID); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("vehicle still readable after delete: %v", err)
	}
	if _, err := ts.rentals.GetRental(ctx, rental.ID); !errors.Is(err, domain.ErrRentalNotFound) {
		t.Errorf("finished rental should be gone after cascade: %v", err)
	}
}

func TestDeleteVehicleNotFound(t *testing.T) {
	ts := newTestServices(t)

	if err := ts.vehicles.DeleteVehicle(context.Background(), 9999); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Errorf("got %v, want ErrVehicleNotFound", err)
	}
}

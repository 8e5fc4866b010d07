package services

import (
	"context"
	"errors"
	"testing"

	"fulkoping-rental/internal/core/domain"
)

func TestCreateUserVariants(t *testing.T) {
	ts := newTestServices(t)

	admin := ts.createAdmin(t, "anna@fulkoping.se", "ABCDEF1")
	if admin.Type != "Admin" || admin.EmployeeNumber == nil {
		t.Errorf("unexpected admin: %+v", admin)
	}
	if admin.PhoneNumber != nil {
		t.Error("admin should not carry a phone number")
	}

	customer := ts.createCustomer(t, "karin@example.com")
	if customer.Type != "Customer" || customer.PhoneNumber == nil {
		t.Errorf("unexpected customer: %+v", customer)
	}
	if customer.EmployeeNumber != nil {
		t.Error("customer should not carry an employee number")
	}
}

func TestCreateUserUnknownType(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.users.CreateUser(context.Background(), CreateUserInput{
		Type:      "manager",
		FirstName: "Karin",
		LastName:  "Larsson",
		Email:     "karin@example.com",
	})
	if !errors.Is(err, domain.ErrUnknownUserType) {
		t.Errorf("got %v, want ErrUnknownUserType", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateUserInput
		field string
	}{
		{
			name: "short first name",
			input: CreateUserInput{
				Type: "customer", FirstName: "K", LastName: "Larsson",
				Email: "karin@example.com", PhoneNumber: strPtr("+46701234567"),
			},
			field: "firstName",
		},
		{
			name: "bad email",
			input: CreateUserInput{
				Type: "customer", FirstName: "Karin", LastName: "Larsson",
				Email: "not-an-email", PhoneNumber: strPtr("+46701234567"),
			},
			field: "email",
		},
		{
			name: "bad phone",
			input: CreateUserInput{
				Type: "customer", FirstName: "Karin", LastName: "Larsson",
				Email: "karin@example.com", PhoneNumber: strPtr("070-123"),
			},
			field: "phoneNumber",
		},
		{
			name: "bad employee number",
			input: CreateUserInput{
				Type: "admin", FirstName: "Anna", LastName: "Andersson",
				Email: "anna@fulkoping.se", EmployeeNumber: strPtr("abc1"),
			},
			field: "employeeNumber",
		},
		{
			name: "customer missing phone",
			input: CreateUserInput{
				Type: "customer", FirstName: "Karin", LastName: "Larsson",
				Email: "karin@example.com",
			},
			field: "phoneNumber",
		},
		{
			name: "admin missing employee number",
			input: CreateUserInput{
				Type: "admin", FirstName: "Anna", LastName: "Andersson",
				Email: "anna@fulkoping.se",
			},
			field: "employeeNumber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.users.CreateUser(ctx, tt.input)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			found := false
			for _, v := range verr.Violations {
				if v.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("violations %+v do not mention %q", verr.Violations, tt.field)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ts := newTestServices(t)

	ts.createCustomer(t, "karin@example.com")

	_, err := ts.users.CreateUser(context.Background(), CreateUserInput{
		Type: "customer", FirstName: "Karin", LastName: "Larsson",
		Email: "karin@example.com", PhoneNumber: strPtr("+46701234567"),
	})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.Field != "email" {
		t.Errorf("conflict field = %q, want email", conflict.Field)
	}
}

func TestCreateUserDuplicateEmployeeNumber(t *testing.T) {
	ts := newTestServices(t)

	ts.createAdmin(t, "anna@fulkoping.se", "ABCDEF1")

	_, err := ts.users.CreateUser(context.Background(), CreateUserInput{
		Type: "admin", FirstName: "Bodil", LastName: "Bergström",
		Email: "bodil@fulkoping.se", EmployeeNumber: strPtr("ABCDEF1"),
	})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.Field != "employeeNumber" {
		t.Errorf("conflict field = %q, want employeeNumber", conflict.Field)
	}
}

func TestGetAllUsersByType(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ts.createAdmin(t, "anna@fulkoping.se", "ABCDEF1")
	ts.createCustomer(t, "karin@example.com")
	ts.createCustomer(t, "lars@example.com")

	customers, err := ts.users.GetAllUsersByType(ctx, "Customer")
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(customers) != 2 {
		t.Errorf("customer count = %d, want 2", len(customers))
	}

	admins, err := ts.users.GetAllUsersByType(ctx, "Admin")
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 1 {
		t.Errorf("admin count = %d, want 1", len(admins))
	}
}

func TestPatchUser(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	customer := ts.createCustomer(t, "karin@example.com")

	patched, err := ts.users.PatchUser(ctx, customer.ID, map[string]any{
		"firstName":   "Karina",
		"email":       "karina@example.com",
		"phoneNumber": "+46709876543",
	})
	if err != nil {
		t.Fatalf("patch user: %v", err)
	}
	if patched.FirstName != "Karina" || patched.Email != "karina@example.com" {
		t.Errorf("unexpected patched user: %+v", patched)
	}
	if patched.PhoneNumber == nil || *patched.PhoneNumber != "+46709876543" {
		t.Errorf("phone not updated: %+v", patched.PhoneNumber)
	}
	if patched.LastName != "Larsson" {
		t.Error("untouched field should keep its value")
	}
}

func TestPatchUserFieldNotAllowed(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	admin := ts.createAdmin(t, "anna@fulkoping.se", "ABCDEF1")
	customer := ts.createCustomer(t, "karin@example.com")

	// Phone number is a customer field, admins cannot patch it.
	_, err := ts.users.PatchUser(ctx, admin.ID, map[string]any{"phoneNumber": "+46701234567"})
	var notAllowed *domain.FieldNotAllowedError
	if !errors.As(err, &notAllowed) {
		t.Fatalf("got %v, want FieldNotAllowedError", err)
	}
	if notAllowed.Error() != "Field not allowed: phoneNumber" {
		t.Errorf("unexpected message %q", notAllowed.Error())
	}

	// The discriminator and variant-foreign fields are never patchable.
	for _, field := range []string{"type", "employeeNumber", "id"} {
		if _, err := ts.users.PatchUser(ctx, customer.ID, map[string]any{field: "x"}); !errors.As(err, &notAllowed) {
			t.Errorf("field %q: got %v, want FieldNotAllowedError", field, err)
		}
	}
}

func TestPatchUserInvalidValues(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	customer := ts.createCustomer(t, "karin@example.com")

	// Empty body.
	if _, err := ts.users.PatchUser(ctx, customer.ID, map[string]any{}); !errors.Is(err, domain.ErrEmptyPatchBody) {
		t.Errorf("empty body: got %v, want ErrEmptyPatchBody", err)
	}

	// Non-string value.
	_, err := ts.users.PatchUser(ctx, customer.ID, map[string]any{"firstName": 42})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("non-string: got %v, want ValidationError", err)
	}

	// Values failing the create-time rules.
	for field, value := range map[string]string{
		"firstName":   "K",
		"email":       "nope",
		"phoneNumber": "12345",
	} {
		if _, err := ts.users.PatchUser(ctx, customer.ID, map[string]any{field: value}); !errors.As(err, &verr) {
			t.Errorf("field %q: got %v, want ValidationError", field, err)
		}
	}

	// A failed patch leaves the user untouched.
	got, err := ts.users.GetUser(ctx, customer.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.FirstName != "Karin" || got.Email != "karin@example.com" {
		t.Errorf("user mutated by failed patch: %+v", got)
	}
}

func TestPatchUserDuplicateEmail(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	ts.createCustomer(t, "karin@example.com")
	other := ts.createCustomer(t, "lars@example.com")

	_, err := ts.users.PatchUser(ctx, other.ID, map[string]any{"email": "karin@example.com"})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}

	// Re-submitting your own email is not a conflict.
	if _, err := ts.users.PatchUser(ctx, other.ID, map[string]any{"email": "lars@example.com"}); err != nil {
		t.Errorf("own email: %v", err)
	}
}

func TestDeleteUserWithActiveRentalRefused(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	user := ts.createCustomer(t, "karin@example.com")
	car := ts.createCar(t, "ABC123")

	if _, err := ts.rentals.CreateRental(ctx, user.ID, car.ID); err != nil {
		t.Fatalf("create rental: %v", err)
	}

	if err := ts.users.DeleteUser(ctx, user.ID); !errors.Is(err, domain.ErrUserHasActiveRental) {
		t.Errorf("got %v, want ErrUserHasActiveRental", err)
	}
	if _, err := ts.users.GetUser(ctx, user.ID); err != nil {
		t.Errorf("user should survive refused delete: %v", err)
	}
}

func TestDeleteUserCascadesFinishedRentals(t *testing.T) {
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

	if err := ts.users.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := ts.users.GetUser(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("user still readable after delete: %v", err)
	}
	if _, err := ts.rentals.GetRental(ctx, rental.ID); !errors.Is(err, domain.ErrRentalNotFound) {
		t.Errorf("finished rental should be gone after cascade: %v", err)
	}

	// The vehicle itself is untouched.
	if _, err := ts.vehicles.GetVehicle(ctx, car.ID); err != nil {
		t.Errorf("vehicle should survive user delete: %v", err)
	}
}

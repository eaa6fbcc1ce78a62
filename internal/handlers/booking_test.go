package handlers

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cleopatra/internal/models"
)

func TestCanViewBookingAdminSeesEverything(t *testing.T) {
	admin := primitive.NewObjectID()
	booking := models.Booking{UserID: primitive.NewObjectID()}

	if !canViewBooking(models.RoleAdmin, admin, booking) {
		t.Fatal("expected admin to view any booking")
	}
}

func TestCanViewBookingOwnerSeesOwn(t *testing.T) {
	owner := primitive.NewObjectID()
	booking := models.Booking{UserID: owner}

	if !canViewBooking(models.RoleCustomer, owner, booking) {
		t.Fatal("expected owner to view own booking")
	}
	if canViewBooking(models.RoleCustomer, primitive.NewObjectID(), booking) {
		t.Fatal("expected other customer to be rejected")
	}
}

func TestCanViewBookingStaffNeedsAssignment(t *testing.T) {
	staff := primitive.NewObjectID()
	other := primitive.NewObjectID()
	booking := models.Booking{UserID: primitive.NewObjectID(), StaffID: &staff}

	if !canViewBooking(models.RoleStaff, staff, booking) {
		t.Fatal("expected assigned staff to view booking")
	}
	if canViewBooking(models.RoleStaff, other, booking) {
		t.Fatal("expected unassigned staff to be rejected")
	}

	unassigned := models.Booking{UserID: primitive.NewObjectID()}
	if canViewBooking(models.RoleStaff, staff, unassigned) {
		t.Fatal("expected staff to be rejected on unassigned booking")
	}
}

func TestCustomerRestrictedFieldsFlagsStatusAndStaffID(t *testing.T) {
	fields := map[string]json.RawMessage{
		"status":  json.RawMessage(`"confirmed"`),
		"notes":   json.RawMessage(`"hi"`),
		"staffId": json.RawMessage(`"abc"`),
	}

	restricted := customerRestrictedFields(fields)
	if len(restricted) != 2 {
		t.Fatalf("expected 2 restricted fields, got %v", restricted)
	}
}

func TestCustomerRestrictedFieldsAllowsPlainPatch(t *testing.T) {
	fields := map[string]json.RawMessage{
		"location":  json.RawMessage(`"123 Main St"`),
		"attendees": json.RawMessage(`5`),
	}

	if restricted := customerRestrictedFields(fields); len(restricted) != 0 {
		t.Fatalf("expected no restricted fields, got %v", restricted)
	}
}

func TestStaffDisallowedFieldsRejectsAnythingOutsideWhitelist(t *testing.T) {
	fields := map[string]json.RawMessage{
		"status": json.RawMessage(`"confirmed"`),
		"foo":    json.RawMessage(`"bar"`),
	}

	disallowed := staffDisallowedFields(fields)
	if len(disallowed) != 1 || disallowed[0] != "foo" {
		t.Fatalf("expected [foo], got %v", disallowed)
	}
}

func TestStaffDisallowedFieldsAllowsStatusAndNotes(t *testing.T) {
	fields := map[string]json.RawMessage{
		"status": json.RawMessage(`"completed"`),
		"notes":  json.RawMessage(`"done"`),
	}

	if disallowed := staffDisallowedFields(fields); len(disallowed) != 0 {
		t.Fatalf("expected no disallowed fields, got %v", disallowed)
	}
}

package models

import "testing"

func TestCanTransitionPendingMovesForwardOrCancels(t *testing.T) {
	if !CanTransition(BookingPending, BookingConfirmed) {
		t.Fatal("expected pending -> confirmed to be allowed")
	}
	if !CanTransition(BookingPending, BookingCancelled) {
		t.Fatal("expected pending -> cancelled to be allowed")
	}
	if CanTransition(BookingPending, BookingCompleted) {
		t.Fatal("expected pending -> completed to be rejected")
	}
}

func TestCanTransitionConfirmedCompletesOrCancels(t *testing.T) {
	if !CanTransition(BookingConfirmed, BookingCompleted) {
		t.Fatal("expected confirmed -> completed to be allowed")
	}
	if !CanTransition(BookingConfirmed, BookingCancelled) {
		t.Fatal("expected confirmed -> cancelled to be allowed")
	}
	if CanTransition(BookingConfirmed, BookingPending) {
		t.Fatal("expected confirmed -> pending to be rejected")
	}
}

func TestCanTransitionTerminalStatesAreFrozen(t *testing.T) {
	for _, terminal := range []string{BookingCompleted, BookingCancelled} {
		for _, next := range []string{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled} {
			if next == terminal {
				continue
			}
			if CanTransition(terminal, next) {
				t.Fatalf("expected %s -> %s to be rejected", terminal, next)
			}
		}
	}
}

func TestCanTransitionSameStatusIsNoOp(t *testing.T) {
	for _, status := range []string{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled} {
		if !CanTransition(status, status) {
			t.Fatalf("expected %s -> %s to be allowed as a no-op", status, status)
		}
	}
}

func TestValidBookingStatusRejectsUnknownValues(t *testing.T) {
	for _, status := range []string{"", "in-progress", "done", "PENDING"} {
		if ValidBookingStatus(status) {
			t.Fatalf("expected %q to be invalid", status)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleCustomer, RoleStaff, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	if ValidRole("owner") {
		t.Fatal("expected unknown role to be invalid")
	}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// bookingTransitions lists the legal next statuses for each current status.
// Terminal statuses have no entries.
var bookingTransitions = map[string][]string{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// ValidBookingStatus reports whether status is one of the four known values.
func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to another.
// Writing the current status back is a no-op and always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return ValidBookingStatus(from)
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking is a scheduled mobile-caravan appointment. UserID is set at creation
// and never changes; StaffID is assigned by an admin.
type Booking struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	Date      time.Time           `bson:"date" json:"date"`
	Location  string              `bson:"location" json:"location"`
	Status    string              `bson:"status" json:"status"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Attendees int                 `bson:"attendees" json:"attendees"`
	StaffID   *primitive.ObjectID `bson:"staffId,omitempty" json:"staffId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cleopatra/internal/middleware"
	"cleopatra/internal/models"
)

type BookingCreateRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	Location  string    `json:"location" binding:"required"`
	Notes     string    `json:"notes"`
	Attendees int       `json:"attendees"`
}

type BookingUpdateRequest struct {
	Date      *time.Time `json:"date"`
	Location  *string    `json:"location"`
	Status    *string    `json:"status"`
	Notes     *string    `json:"notes"`
	Attendees *int       `json:"attendees"`
	StaffID   *string    `json:"staffId"`
}

// staffPatchFields is the whitelist for staff booking patches.
var staffPatchFields = []string{"status", "notes"}

// canViewBooking reports whether a caller may read a booking: admins always,
// the owning customer, and the assigned staff member.
func canViewBooking(role string, callerID primitive.ObjectID, booking models.Booking) bool {
	if role == models.RoleAdmin || booking.UserID == callerID {
		return true
	}
	return role == models.RoleStaff && booking.StaffID != nil && *booking.StaffID == callerID
}

// customerRestrictedFields returns the owner-forbidden fields present in a
// patch body. Customers may never touch staff assignment or status.
func customerRestrictedFields(fields map[string]json.RawMessage) []string {
	restricted := make([]string, 0, 2)
	for _, field := range []string{"staffId", "status"} {
		if _, ok := fields[field]; ok {
			restricted = append(restricted, field)
		}
	}
	return restricted
}

// staffDisallowedFields returns the fields of a patch body that fall outside
// the staff whitelist.
func staffDisallowedFields(fields map[string]json.RawMessage) []string {
	disallowed := make([]string, 0, len(fields))
	for field := range fields {
		allowed := false
		for _, ok := range staffPatchFields {
			if field == ok {
				allowed = true
				break
			}
		}
		if !allowed {
			disallowed = append(disallowed, field)
		}
	}
	return disallowed
}

func GetBookings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, _ := middleware.UserID(c)

		// Visibility narrows with role: admins see everything, staff their
		// assignments, customers their own bookings.
		filter := bson.M{}
		switch middleware.UserRole(c) {
		case models.RoleAdmin:
		case models.RoleStaff:
			filter["staffId"] = callerID
		default:
			filter["userId"] = callerID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
		cursor, err := db.Collection("bookings").Find(ctx, filter, opts)
		if err != nil {
			log.Error().Err(err).Msg("list bookings failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		bookings := make([]models.Booking, 0)
		if err := cursor.All(ctx, &bookings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

func CreateBooking(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, _ := middleware.UserID(c)

		var req BookingCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		attendees := req.Attendees
		if attendees < 1 {
			attendees = 1
		}

		// Owner and status come from the server; client-supplied values for
		// either are ignored by construction.
		booking := models.Booking{
			UserID:    callerID,
			Date:      req.Date,
			Location:  strings.TrimSpace(req.Location),
			Status:    models.BookingPending,
			Notes:     strings.TrimSpace(req.Notes),
			Attendees: attendees,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("bookings").InsertOne(ctx, booking)
		if err != nil {
			log.Error().Err(err).Msg("create booking failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		booking.ID = result.InsertedID.(primitive.ObjectID)

		log.Info().Str("booking", booking.ID.Hex()).Msg("booking created")
		c.JSON(http.StatusCreated, booking)
	}
}

func GetBooking(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var booking models.Booking
		if err := db.Collection("bookings").FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		callerID, _ := middleware.UserID(c)
		if !canViewBooking(middleware.UserRole(c), callerID, booking) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

func UpdateBooking(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		// Field-level authorization depends on which keys the patch carries,
		// so inspect the raw body before binding.
		fields, err := readBodyFields(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var booking models.Booking
		if err := db.Collection("bookings").FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		callerID, _ := middleware.UserID(c)
		role := middleware.UserRole(c)

		switch role {
		case models.RoleAdmin:
			// Unrestricted, except userId which is immutable for everyone.
		case models.RoleStaff:
			if booking.StaffID == nil || *booking.StaffID != callerID {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			if disallowed := staffDisallowedFields(fields); len(disallowed) > 0 {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "Staff can only update " + strings.Join(staffPatchFields, ", "),
				})
				return
			}
		default:
			if booking.UserID != callerID {
				c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
			if restricted := customerRestrictedFields(fields); len(restricted) > 0 {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "Customers cannot change staff assignment or booking status",
				})
				return
			}
		}

		var req BookingUpdateRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{}
		unset := bson.M{}

		if req.Status != nil {
			status := *req.Status
			if !models.ValidBookingStatus(status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			if !models.CanTransition(booking.Status, status) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Cannot change status from " + booking.Status + " to " + status,
				})
				return
			}
			update["status"] = status
		}

		if req.StaffID != nil {
			if strings.TrimSpace(*req.StaffID) == "" {
				unset["staffId"] = ""
			} else {
				staffID, err := primitive.ObjectIDFromHex(*req.StaffID)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staffId"})
					return
				}
				update["staffId"] = staffID
			}
		}

		if req.Date != nil {
			update["date"] = *req.Date
		}
		if req.Location != nil {
			location := strings.TrimSpace(*req.Location)
			if location == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "location cannot be empty"})
				return
			}
			update["location"] = location
		}
		if req.Notes != nil {
			update["notes"] = strings.TrimSpace(*req.Notes)
		}
		if req.Attendees != nil {
			if *req.Attendees < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "attendees must be at least 1"})
				return
			}
			update["attendees"] = *req.Attendees
		}

		if len(update) == 0 && len(unset) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		doc := bson.M{}
		if len(update) > 0 {
			doc["$set"] = update
		}
		if len(unset) > 0 {
			doc["$unset"] = unset
		}

		var updated models.Booking
		err = db.Collection("bookings").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				doc,
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("update booking failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteBooking(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var booking models.Booking
		if err := db.Collection("bookings").FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		callerID, _ := middleware.UserID(c)
		if middleware.UserRole(c) != models.RoleAdmin && booking.UserID != callerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		if _, err := db.Collection("bookings").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			log.Error().Err(err).Msg("delete booking failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
	}
}

package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cleopatra/internal/middleware"
	"cleopatra/internal/models"
)

type FeedbackCreateRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func CreateFeedback(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, _ := middleware.UserID(c)

		var req FeedbackCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		bookingID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.BookingID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bookingId"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var booking models.Booking
		if err := db.Collection("bookings").FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		if booking.UserID != callerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only provide feedback for your own bookings"})
			return
		}

		count, err := db.Collection("feedback").CountDocuments(ctx, bson.M{"bookingId": bookingID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback already exists for this booking"})
			return
		}

		feedback := models.Feedback{
			BookingID: bookingID,
			UserID:    callerID,
			Rating:    req.Rating,
			Comment:   strings.TrimSpace(req.Comment),
			CreatedAt: time.Now(),
		}

		result, err := db.Collection("feedback").InsertOne(ctx, feedback)
		if err != nil {
			// The unique index catches a concurrent double submit.
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback already exists for this booking"})
				return
			}
			log.Error().Err(err).Msg("create feedback failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		feedback.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, feedback)
	}
}

func GetAllFeedback(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("feedback").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Error().Err(err).Msg("list feedback failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		feedback := make([]models.Feedback, 0)
		if err := cursor.All(ctx, &feedback); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, feedback)
	}
}

func GetBookingFeedback(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var booking models.Booking
		if err := db.Collection("bookings").FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		callerID, _ := middleware.UserID(c)
		if !canViewBooking(middleware.UserRole(c), callerID, booking) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		var feedback models.Feedback
		if err := db.Collection("feedback").FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&feedback); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No feedback found for this booking"})
			return
		}

		c.JSON(http.StatusOK, feedback)
	}
}

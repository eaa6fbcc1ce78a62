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
	"golang.org/x/crypto/bcrypt"

	"cleopatra/internal/middleware"
	"cleopatra/internal/models"
)

type UserUpdateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Role      *string `json:"role"`
}

func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("users").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Error().Err(err).Msg("list users failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func GetUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		callerID, _ := middleware.UserID(c)
		if middleware.UserRole(c) != models.RoleAdmin && callerID != id {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		callerID, _ := middleware.UserID(c)
		callerRole := middleware.UserRole(c)
		if callerRole != models.RoleAdmin && callerID != id {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		var req UserUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		update := bson.M{}

		if req.Role != nil {
			if callerRole != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cannot change role"})
				return
			}
			if !models.ValidRole(*req.Role) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
				return
			}
			// An admin cannot demote itself out of admin.
			if callerID == id && *req.Role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cannot change own role"})
				return
			}
			update["role"] = *req.Role
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if req.Username != nil {
			username := strings.TrimSpace(*req.Username)
			if username == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "username cannot be empty"})
				return
			}
			count, err := db.Collection("users").CountDocuments(ctx, bson.M{
				"username": username,
				"_id":      bson.M{"$ne": id},
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Username already in use"})
				return
			}
			update["username"] = username
		}

		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email cannot be empty"})
				return
			}
			count, err := db.Collection("users").CountDocuments(ctx, bson.M{
				"email": email,
				"_id":   bson.M{"$ne": id},
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
				return
			}
			update["email"] = email
		}

		if req.Password != nil {
			if len(*req.Password) < 6 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "password is too short"})
				return
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
				return
			}
			update["password"] = string(hash)
		}

		if req.FirstName != nil {
			update["firstName"] = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			update["lastName"] = strings.TrimSpace(*req.LastName)
		}
		if req.Phone != nil {
			update["phone"] = strings.TrimSpace(*req.Phone)
		}
		if req.Address != nil {
			update["address"] = strings.TrimSpace(*req.Address)
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		update["updatedAt"] = time.Now()

		var updated models.User
		err = db.Collection("users").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("update user failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		callerID, _ := middleware.UserID(c)
		if callerID == id {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete own account"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Error().Err(err).Msg("delete user failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

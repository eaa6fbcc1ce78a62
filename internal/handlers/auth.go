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
	"golang.org/x/crypto/bcrypt"

	"cleopatra/internal/middleware"
	"cleopatra/internal/models"
	"cleopatra/internal/session"
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(db *mongo.Database, store session.Store, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		username := strings.TrimSpace(req.Username)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Error().Err(err).Msg("register email lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}

		count, err = db.Collection("users").CountDocuments(ctx, bson.M{"username": username})
		if err != nil {
			log.Error().Err(err).Msg("register username lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already in use"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Msg("register password hash failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		now := time.Now()
		user := models.User{
			Username:  username,
			Email:     email,
			Password:  string(hash),
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Phone:     strings.TrimSpace(req.Phone),
			Address:   strings.TrimSpace(req.Address),
			// Accounts always start as customers; staff and admin roles are
			// granted by an admin afterwards.
			Role:      models.RoleCustomer,
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
				return
			}
			log.Error().Err(err).Msg("register insert failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		user.ID = res.InsertedID.(primitive.ObjectID)

		if err := bindSession(c, store, user, sessionTTL); err != nil {
			return
		}

		log.Info().Str("email", email).Msg("user registered")
		c.JSON(http.StatusCreated, user)
	}
}

func Login(db *mongo.Database, store session.Store, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		identifier := strings.TrimSpace(req.Email)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		// Email first, username as fallback; the login form accepts either.
		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": strings.ToLower(identifier)}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			err = db.Collection("users").FindOne(ctx, bson.M{"username": identifier}).Decode(&user)
		}
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("login lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if !passwordMatches(user.Password, req.Password) {
			log.Info().Str("user", user.Username).Msg("login rejected")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := bindSession(c, store, user, sessionTTL); err != nil {
			return
		}

		log.Info().Str("user", user.Username).Msg("login succeeded")
		c.JSON(http.StatusOK, user)
	}
}

// passwordMatches compares against a bcrypt hash when the stored value
// carries the bcrypt marker, and falls back to plain equality for legacy
// rows seeded before hashing was uniform. All write paths hash, so the plain
// branch only ever sees pre-existing data.
func passwordMatches(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return stored == candidate
}

func bindSession(c *gin.Context, store session.Store, user models.User, ttl time.Duration) error {
	token, err := session.NewToken()
	if err != nil {
		log.Error().Err(err).Msg("session token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
		return err
	}

	sess := session.Session{
		UserID:    user.ID.Hex(),
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	if err := store.Create(c.Request.Context(), token, &sess); err != nil {
		log.Error().Err(err).Msg("session store failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
		return err
	}

	c.SetCookie(middleware.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
	return nil
}

func Logout(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(middleware.CookieName)
		if err == nil && token != "" {
			if err := store.Delete(c.Request.Context(), token); err != nil {
				log.Error().Err(err).Msg("session delete failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to logout"})
				return
			}
		}

		c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

func Me(db *mongo.Database, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			// Session points at a user that no longer exists; drop it.
			if token := c.GetString("sessionToken"); token != "" {
				_ = store.Delete(c.Request.Context(), token)
			}
			c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

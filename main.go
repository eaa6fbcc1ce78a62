package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"cleopatra/internal/config"
	"cleopatra/internal/database"
	"cleopatra/internal/handlers"
	"cleopatra/internal/logging"
	"cleopatra/internal/metrics"
	"cleopatra/internal/middleware"
	"cleopatra/internal/session"
)

func main() {
	config.Load()

	logger := logging.New(config.AppEnv.LogLevel, config.AppEnv.LogFormat)
	log.Logger = logger

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect failed")
	}

	db := client.Database(config.AppEnv.DBName)
	log.Info().Str("db", db.Name()).Msg("mongodb connected")

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Warn().Err(err).Msg("user index warning")
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Warn().Err(err).Msg("product index warning")
	}
	if err := database.EnsureBookingIndexes(db); err != nil {
		log.Warn().Err(err).Msg("booking index warning")
	}
	if err := database.EnsureFeedbackIndexes(db); err != nil {
		log.Warn().Err(err).Msg("feedback index warning")
	}

	metrics.Register()

	// Sessions live in Redis with a native TTL; a dead Redis degrades to
	// per-process sessions instead of taking the site down.
	redisStore := session.NewRedisStore(
		session.NewRedisClient(config.AppEnv.RedisAddr, config.AppEnv.RedisPassword, config.AppEnv.RedisDB),
		config.AppEnv.SessionTTL,
	)
	memoryStore := session.NewMemoryStore(config.AppEnv.SessionTTL, time.Hour)
	defer memoryStore.Close()
	store := session.NewFailoverStore(redisStore, memoryStore, &logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.Resolve(store))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authLimit := middleware.RateLimit(config.AppEnv.AuthRateRPS, config.AppEnv.AuthRateBurst)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authLimit, handlers.Register(db, store, config.AppEnv.SessionTTL))
		auth.POST("/login", authLimit, handlers.Login(db, store, config.AppEnv.SessionTTL))
		auth.POST("/logout", handlers.Logout(store))
		auth.GET("/me", handlers.Me(db, store))
	}

	users := r.Group("/api/users")
	{
		users.GET("", middleware.RequireAdmin(), handlers.GetUsers(db))
		users.GET("/:id", middleware.RequireAuth(), handlers.GetUser(db))
		users.PATCH("/:id", middleware.RequireAuth(), handlers.UpdateUser(db))
		users.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteUser(db))
	}

	categories := r.Group("/api/categories")
	{
		categories.GET("", handlers.GetCategories(db))
		categories.GET("/:id", handlers.GetCategory(db))
		categories.POST("", middleware.RequireAdmin(), handlers.CreateCategory(db))
		categories.PATCH("/:id", middleware.RequireAdmin(), handlers.UpdateCategory(db))
		categories.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteCategory(db))
	}

	products := r.Group("/api/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/:id", handlers.GetProduct(db))
		products.POST("", middleware.RequireAdmin(), handlers.CreateProduct(db))
		products.PATCH("/:id", middleware.RequireAdmin(), handlers.UpdateProduct(db))
		products.DELETE("/:id", middleware.RequireAdmin(), handlers.DeleteProduct(db))
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.RequireAuth())
	{
		bookings.GET("", handlers.GetBookings(db))
		bookings.POST("", handlers.CreateBooking(db))
		bookings.GET("/export", middleware.RequireAdmin(), handlers.ExportBookings(db))
		bookings.GET("/:id", handlers.GetBooking(db))
		bookings.PATCH("/:id", handlers.UpdateBooking(db))
		bookings.DELETE("/:id", handlers.DeleteBooking(db))
	}

	feedback := r.Group("/api/feedback")
	feedback.Use(middleware.RequireAuth())
	{
		feedback.POST("", handlers.CreateFeedback(db))
		feedback.GET("", middleware.RequireStaff(), handlers.GetAllFeedback(db))
		feedback.GET("/booking/:id", handlers.GetBookingFeedback(db))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

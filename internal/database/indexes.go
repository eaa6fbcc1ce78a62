package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_unique").SetUnique(true),
		},
	}

	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Error().Err(err).Msg("EnsureUserIndexes failed")
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "categoryId", Value: 1}},
			Options: options.Index().SetName("categoryId_index"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}},
			Options: options.Index().SetName("featured_index"),
		},
	}

	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Error().Err(err).Msg("EnsureProductIndexes failed")
		return err
	}
	return nil
}

func EnsureBookingIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("bookings").Indexes()

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetName("userId_index"),
		},
		{
			Keys:    bson.D{{Key: "staffId", Value: 1}},
			Options: options.Index().SetName("staffId_index"),
		},
	}

	_, err := indexes.CreateMany(ctx, models)
	if err != nil {
		log.Error().Err(err).Msg("EnsureBookingIndexes failed")
		return err
	}
	return nil
}

func EnsureFeedbackIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("feedback").Indexes()

	// One feedback record per booking, enforced at the storage layer as well
	// as by the write-time lookup.
	bookingIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "bookingId", Value: 1}},
		Options: options.Index().SetName("bookingId_unique").SetUnique(true),
	}

	_, err := indexes.CreateOne(ctx, bookingIndex)
	if err != nil {
		log.Error().Err(err).Msg("EnsureFeedbackIndexes failed")
		return err
	}
	return nil
}

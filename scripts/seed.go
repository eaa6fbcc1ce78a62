package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"cleopatra/internal/config"
	"cleopatra/internal/database"
	"cleopatra/internal/models"
)

type seedUser struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
	role      string
}

type seedProduct struct {
	name        string
	description string
	price       int64
	imageURL    string
	category    string
	brand       string
	stockCount  int
	featured    bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		return fmt.Errorf("mongodb connect: %w", err)
	}
	db := client.Database(config.AppEnv.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(context.Background())

	if err := seedUsers(ctx, db); err != nil {
		return err
	}
	categoryIDs, err := seedCategories(ctx, db)
	if err != nil {
		return err
	}
	if err := seedProducts(ctx, db, categoryIDs); err != nil {
		return err
	}

	fmt.Println("seeding complete")
	return nil
}

func seedUsers(ctx context.Context, db *mongo.Database) error {
	users := []seedUser{
		{"admin", "admin@cleopatra-eyewear.com", "admin123", "Cleo", "Admin", models.RoleAdmin},
		{"staff.maria", "maria@cleopatra-eyewear.com", "staff123", "Maria", "Lopez", models.RoleStaff},
		{"staff.jonas", "jonas@cleopatra-eyewear.com", "staff123", "Jonas", "Berg", models.RoleStaff},
	}

	for _, u := range users {
		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"username": u.username})
		if err != nil {
			return fmt.Errorf("user lookup: %w", err)
		}
		if count > 0 {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		now := time.Now()
		_, err = db.Collection("users").InsertOne(ctx, models.User{
			Username:  u.username,
			Email:     u.email,
			Password:  string(hash),
			FirstName: u.firstName,
			LastName:  u.lastName,
			Role:      u.role,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.username, err)
		}
		fmt.Println("seeded user:", u.username)
	}
	return nil
}

func seedCategories(ctx context.Context, db *mongo.Database) (map[string]primitive.ObjectID, error) {
	categories := []models.Category{
		{Name: "Sunglasses", Description: "Stylish and protective sunglasses for every occasion"},
		{Name: "Reading Glasses", Description: "Comfortable reading glasses for everyday use"},
		{Name: "Blue Light Glasses", Description: "Protect your eyes from digital screens"},
		{Name: "Prescription Glasses", Description: "High-quality prescription eyewear"},
	}

	ids := make(map[string]primitive.ObjectID, len(categories))
	for _, cat := range categories {
		var existing models.Category
		err := db.Collection("categories").FindOne(ctx, bson.M{"name": cat.Name}).Decode(&existing)
		if err == nil {
			ids[cat.Name] = existing.ID
			continue
		}
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("category lookup: %w", err)
		}

		result, err := db.Collection("categories").InsertOne(ctx, cat)
		if err != nil {
			return nil, fmt.Errorf("insert category %s: %w", cat.Name, err)
		}
		ids[cat.Name] = result.InsertedID.(primitive.ObjectID)
		fmt.Println("seeded category:", cat.Name)
	}
	return ids, nil
}

func seedProducts(ctx context.Context, db *mongo.Database, categoryIDs map[string]primitive.ObjectID) error {
	products := []seedProduct{
		{"Elegant Black Frame", "A sophisticated black frame design perfect for professional and casual settings.", 12999, "", "Sunglasses", "Cleopatra Elite", 25, true},
		{"Rose Gold Aviators", "Classic aviator style with a modern rose gold finish.", 15999, "", "Sunglasses", "Cleopatra Elite", 18, true},
		{"Vintage Round Sunglasses", "Retro-inspired round frames with gradient lenses.", 9999, "", "Sunglasses", "Cleopatra Vintage", 30, false},
		{"Cat Eye Glamour", "Bold cat-eye design in premium Italian acetate.", 17999, "", "Sunglasses", "Cleopatra Glamour", 15, true},
		{"Classic Reading Frames", "Comfortable reading glasses with anti-reflective coating.", 5999, "", "Reading Glasses", "Cleopatra Comfort", 40, false},
		{"Lightweight Titanium Readers", "Ultra-light titanium frames for all-day comfort.", 8999, "", "Reading Glasses", "Cleopatra Tech", 22, true},
		{"Digital Shield Pro", "Blue light blocking for digital device users.", 7999, "", "Blue Light Glasses", "Cleopatra Tech", 35, true},
		{"Crystal Clear Prescription", "Precision-ground prescription lenses in a minimal frame.", 19999, "", "Prescription Glasses", "Cleopatra Elite", 12, false},
	}

	for _, p := range products {
		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"name": p.name})
		if err != nil {
			return fmt.Errorf("product lookup: %w", err)
		}
		if count > 0 {
			continue
		}

		var categoryID *primitive.ObjectID
		if id, ok := categoryIDs[p.category]; ok {
			categoryID = &id
		}

		_, err = db.Collection("products").InsertOne(ctx, models.Product{
			Name:        p.name,
			Description: p.description,
			Price:       p.price,
			ImageURL:    p.imageURL,
			CategoryID:  categoryID,
			Brand:       p.brand,
			InStock:     p.stockCount > 0,
			StockCount:  p.stockCount,
			Featured:    p.featured,
			CreatedAt:   time.Now(),
		})
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.name, err)
		}
		fmt.Println("seeded product:", p.name)
	}
	return nil
}

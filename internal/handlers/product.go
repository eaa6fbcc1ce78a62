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

	"cleopatra/internal/models"
)

type ProductCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       *int64 `json:"price" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	CategoryID  string `json:"categoryId"`
	Brand       string `json:"brand"`
	InStock     *bool  `json:"inStock"`
	StockCount  *int   `json:"stockCount"`
	Featured    *bool  `json:"featured"`
}

type ProductUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	CategoryID  *string `json:"categoryId"`
	Brand       *string `json:"brand"`
	InStock     *bool   `json:"inStock"`
	StockCount  *int    `json:"stockCount"`
	Featured    *bool   `json:"featured"`
}

/*
GET /api/products
- ?categoryId= filters by category
- ?featured=true filters featured products
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := bson.M{}

		if categoryID := strings.TrimSpace(c.Query("categoryId")); categoryID != "" {
			id, err := primitive.ObjectIDFromHex(categoryID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
				return
			}
			filter["categoryId"] = id
		} else if c.Query("featured") == "true" {
			filter["featured"] = true
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		categoryID, err := resolveCategoryID(ctx, db, req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}

		inStock := true
		if req.InStock != nil {
			inStock = *req.InStock
		}
		stockCount := 0
		if req.StockCount != nil {
			stockCount = *req.StockCount
		}
		featured := false
		if req.Featured != nil {
			featured = *req.Featured
		}

		product := models.Product{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			Price:       *req.Price,
			ImageURL:    strings.TrimSpace(req.ImageURL),
			CategoryID:  categoryID,
			Brand:       strings.TrimSpace(req.Brand),
			InStock:     inStock,
			StockCount:  stockCount,
			Featured:    featured,
			CreatedAt:   time.Now(),
		}

		result, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Error().Err(err).Msg("create product failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		product.ID = result.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{}
		unset := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			update["name"] = name
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil {
			if *req.Price < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
				return
			}
			update["price"] = *req.Price
		}
		if req.ImageURL != nil {
			update["imageUrl"] = strings.TrimSpace(*req.ImageURL)
		}
		if req.CategoryID != nil {
			if strings.TrimSpace(*req.CategoryID) == "" {
				unset["categoryId"] = ""
			} else {
				categoryID, err := resolveCategoryID(ctx, db, *req.CategoryID)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
					return
				}
				update["categoryId"] = categoryID
			}
		}
		if req.Brand != nil {
			update["brand"] = strings.TrimSpace(*req.Brand)
		}
		if req.InStock != nil {
			update["inStock"] = *req.InStock
		}
		if req.StockCount != nil {
			update["stockCount"] = *req.StockCount
		}
		if req.Featured != nil {
			update["featured"] = *req.Featured
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

		var updated models.Product
		err = db.Collection("products").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				doc,
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Error().Err(err).Msg("delete product failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// resolveCategoryID parses and verifies an optional category reference.
// Returns nil for an empty value.
func resolveCategoryID(ctx context.Context, db *mongo.Database, raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, err
	}

	count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &id, nil
}

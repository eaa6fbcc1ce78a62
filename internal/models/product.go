package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Price is in integer minor currency units (cents).
type Product struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Price       int64               `bson:"price" json:"price"`
	ImageURL    string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CategoryID  *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Brand       string              `bson:"brand,omitempty" json:"brand,omitempty"`
	InStock     bool                `bson:"inStock" json:"inStock"`
	StockCount  int                 `bson:"stockCount" json:"stockCount"`
	Featured    bool                `bson:"featured" json:"featured"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

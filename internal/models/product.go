package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the catalog document the cart and order pipeline prices
// against. DiscountedPrice is the absolute amount taken off Price per unit.
type Product struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title           string              `bson:"title" json:"title"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64             `bson:"price" json:"price"`
	DiscountedPrice float64             `bson:"discountedPrice" json:"discountedPrice"`
	Quantity        int                 `bson:"quantity" json:"quantity"`
	Live            bool                `bson:"live" json:"live"`
	InStock         bool                `bson:"stock" json:"stock"`
	CategoryID      *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	IsDeleted       bool                `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt       *time.Time          `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	AddedDate       time.Time           `bson:"addedDate" json:"addedDate"`
}

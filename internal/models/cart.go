package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product entry inside a cart. LineTotal caches
// quantity × (price − discountedPrice) as of the last quantity change;
// order finalization reprices from the catalog and never trusts it.
type CartItem struct {
	ItemID    string             `bson:"itemId" json:"itemId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	LineTotal float64            `bson:"lineTotal" json:"lineTotal"`
}

// Cart is a user's single mutable pre-checkout cart. It is created lazily on
// the first add and cleared, never deleted, when an order is finalized.
type Cart struct {
	ID        string             `bson:"_id" json:"cartId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Items     []CartItem         `bson:"items" json:"items"`
}

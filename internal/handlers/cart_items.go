package handlers

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeapi/internal/models"
)

// lineTotal is quantity × (price − discountedPrice), the cached per-line
// value carts carry between adds.
func lineTotal(quantity int, price, discountedPrice float64) float64 {
	return float64(quantity) * unitPrice(price, discountedPrice)
}

func newCartItem(product models.Product, quantity int) models.CartItem {
	return models.CartItem{
		ItemID:    uuid.NewString(),
		ProductID: product.ID,
		Quantity:  quantity,
		LineTotal: lineTotal(quantity, product.Price, product.DiscountedPrice),
	}
}

// The add-to-cart merge runs as conditional updates keyed on
// (cartId, productId) rather than a whole-document read-modify-write: the
// replace only matches when the entry exists, the append only matches when
// it is absent, so concurrent adds cannot overwrite each other or leave two
// entries for one product. An existing entry has its quantity replaced, not
// accumulated.

func cartItemMatchFilter(cartID string, productID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":             cartID,
		"items.productId": productID,
	}
}

func cartItemAbsentFilter(cartID string, productID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":             cartID,
		"items.productId": bson.M{"$ne": productID},
	}
}

func cartItemReplaceUpdate(product models.Product, quantity int) bson.M {
	return bson.M{
		"$set": bson.M{
			"items.$.quantity":  quantity,
			"items.$.lineTotal": lineTotal(quantity, product.Price, product.DiscountedPrice),
		},
	}
}

func cartItemAppendUpdate(item models.CartItem) bson.M {
	return bson.M{
		"$push": bson.M{"items": item},
	}
}

// cartOwnsItem reports whether the cart carries the given item id. Removal
// uses it to tell a plain miss from an item sitting in someone else's cart.
func cartOwnsItem(cart models.Cart, itemID string) bool {
	for _, item := range cart.Items {
		if item.ItemID == itemID {
			return true
		}
	}
	return false
}

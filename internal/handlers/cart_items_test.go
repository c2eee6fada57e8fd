package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeapi/internal/models"
)

func TestLineTotal(t *testing.T) {
	if got := lineTotal(2, 100, 10); got != 180 {
		t.Fatalf("expected line total 180, got %v", got)
	}
	if got := lineTotal(3, 50, 0); got != 150 {
		t.Fatalf("expected line total 150, got %v", got)
	}
}

func TestNewCartItemPricesFromCatalog(t *testing.T) {
	product := models.Product{
		ID:              primitive.NewObjectID(),
		Title:           "Test",
		Price:           100,
		DiscountedPrice: 10,
	}

	item := newCartItem(product, 2)
	if item.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", item.Quantity)
	}
	if item.LineTotal != 180 {
		t.Fatalf("expected lineTotal 180, got %v", item.LineTotal)
	}
	if item.ProductID != product.ID {
		t.Fatal("expected item to reference the product")
	}
	if item.ItemID == "" {
		t.Fatal("expected a generated itemId")
	}

	other := newCartItem(product, 2)
	if other.ItemID == item.ItemID {
		t.Fatal("expected item ids to be unique")
	}
}

// A second add for the same product replaces the quantity outright: qty 2
// then qty 5 must leave lineTotal at 450, not accumulate to 630.
func TestCartItemReplaceUpdateReplacesNotAccumulates(t *testing.T) {
	product := models.Product{
		ID:              primitive.NewObjectID(),
		Price:           100,
		DiscountedPrice: 10,
	}

	update := cartItemReplaceUpdate(product, 5)
	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("expected a $set update, got %v", update)
	}
	if set["items.$.quantity"] != 5 {
		t.Fatalf("expected quantity set to 5, got %v", set["items.$.quantity"])
	}
	if set["items.$.lineTotal"] != float64(450) {
		t.Fatalf("expected lineTotal set to 450, got %v", set["items.$.lineTotal"])
	}
}

func TestCartItemMatchFilterKeysOnCartAndProduct(t *testing.T) {
	productID := primitive.NewObjectID()
	filter := cartItemMatchFilter("cart-1", productID)

	if filter["_id"] != "cart-1" {
		t.Fatalf("expected cart filter on _id, got %v", filter["_id"])
	}
	if filter["items.productId"] != productID {
		t.Fatalf("expected product filter, got %v", filter["items.productId"])
	}
}

// The append filter only matches a cart that does not already carry the
// product, so two racing adds for the same new product cannot both push;
// the loser falls through to the replace path instead of duplicating.
func TestCartItemAbsentFilterExcludesExistingProduct(t *testing.T) {
	productID := primitive.NewObjectID()
	filter := cartItemAbsentFilter("cart-1", productID)

	if filter["_id"] != "cart-1" {
		t.Fatalf("expected cart filter on _id, got %v", filter["_id"])
	}
	cond, ok := filter["items.productId"].(bson.M)
	if !ok {
		t.Fatalf("expected a condition on items.productId, got %v", filter["items.productId"])
	}
	if cond["$ne"] != productID {
		t.Fatalf("expected $ne guard on the product id, got %v", cond["$ne"])
	}
}

func TestCartItemAppendUpdatePushesItem(t *testing.T) {
	item := models.CartItem{ItemID: "i-1", Quantity: 1, LineTotal: 90}

	update := cartItemAppendUpdate(item)
	push, ok := update["$push"].(bson.M)
	if !ok {
		t.Fatalf("expected a $push update, got %v", update)
	}
	pushed, ok := push["items"].(models.CartItem)
	if !ok || pushed.ItemID != "i-1" {
		t.Fatalf("expected item pushed into items, got %v", push["items"])
	}
}

// Removal must tell an item missing everywhere from an item that lives in
// another user's cart; this pins the membership half of that split.
func TestCartOwnsItem(t *testing.T) {
	cart := models.Cart{
		ID: "cart-1",
		Items: []models.CartItem{
			{ItemID: "i-1", Quantity: 1},
			{ItemID: "i-2", Quantity: 3},
		},
	}

	if !cartOwnsItem(cart, "i-2") {
		t.Fatal("expected cart to own its item")
	}
	if cartOwnsItem(cart, "i-9") {
		t.Fatal("expected foreign item id to not belong to the cart")
	}
	if cartOwnsItem(models.Cart{ID: "cart-2"}, "i-1") {
		t.Fatal("expected empty cart to own nothing")
	}
}

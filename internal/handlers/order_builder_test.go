package handlers

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeapi/internal/models"
)

func testDraft() orderDraft {
	return orderDraft{
		BillingAddress: "1 Main St",
		BillingName:    "Test Buyer",
		BillingPhone:   "555-0100",
	}
}

func TestBuildOrderSnapshotsEveryCartLine(t *testing.T) {
	userID := primitive.NewObjectID()
	p1 := models.Product{ID: primitive.NewObjectID(), Title: "P1", Price: 50, DiscountedPrice: 0}
	p2 := models.Product{ID: primitive.NewObjectID(), Title: "P2", Price: 100, DiscountedPrice: 10}

	cart := models.Cart{
		ID:     "cart-1",
		UserID: userID,
		Items: []models.CartItem{
			{ItemID: "i-1", ProductID: p1.ID, Quantity: 3, LineTotal: 150},
			{ItemID: "i-2", ProductID: p2.ID, Quantity: 2, LineTotal: 180},
		},
	}
	products := map[primitive.ObjectID]models.Product{p1.ID: p1, p2.ID: p2}

	now := time.Now()
	order, err := buildOrder(testDraft(), userID, cart, products, now)
	if err != nil {
		t.Fatalf("buildOrder returned error: %v", err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if order.TotalAmount != 330 {
		t.Fatalf("expected totalAmount 330, got %v", order.TotalAmount)
	}
	if order.ID == "" {
		t.Fatal("expected a generated order id")
	}
	if !order.OrderDate.Equal(now) {
		t.Fatal("expected orderDate set to now")
	}
	if order.DeliveredDate != nil {
		t.Fatal("expected deliveredDate nil at creation")
	}
	if order.UserID != userID {
		t.Fatal("expected order owned by the user")
	}
}

// A price change between add-to-cart and checkout must show up in the order:
// totals come from the catalog's current prices, not the cart's cached
// lineTotal.
func TestBuildOrderRepricesFromCurrentCatalog(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Title: "P1", Price: 80, DiscountedPrice: 0}

	cart := models.Cart{
		ID:     "cart-1",
		UserID: userID,
		Items: []models.CartItem{
			// cached at the old price of 100
			{ItemID: "i-1", ProductID: product.ID, Quantity: 2, LineTotal: 200},
		},
	}
	products := map[primitive.ObjectID]models.Product{product.ID: product}

	order, err := buildOrder(testDraft(), userID, cart, products, time.Now())
	if err != nil {
		t.Fatalf("buildOrder returned error: %v", err)
	}
	if order.Items[0].TotalPrice != 160 {
		t.Fatalf("expected repriced total 160, got %v", order.Items[0].TotalPrice)
	}
	if order.TotalAmount != 160 {
		t.Fatalf("expected totalAmount 160, got %v", order.TotalAmount)
	}
}

func TestBuildOrderRejectsEmptyCart(t *testing.T) {
	userID := primitive.NewObjectID()
	cart := models.Cart{ID: "cart-1", UserID: userID}

	_, err := buildOrder(testDraft(), userID, cart, nil, time.Now())
	if !errors.Is(err, errEmptyCart) {
		t.Fatalf("expected errEmptyCart, got %v", err)
	}
}

func TestBuildOrderDefaultsStatuses(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Price: 10}
	cart := models.Cart{
		ID:     "cart-1",
		UserID: userID,
		Items:  []models.CartItem{{ItemID: "i-1", ProductID: product.ID, Quantity: 1}},
	}
	products := map[primitive.ObjectID]models.Product{product.ID: product}

	order, err := buildOrder(testDraft(), userID, cart, products, time.Now())
	if err != nil {
		t.Fatalf("buildOrder returned error: %v", err)
	}
	if order.OrderStatus != "PENDING" {
		t.Fatalf("expected default orderStatus PENDING, got %q", order.OrderStatus)
	}
	if order.PaymentStatus != "NOT_PAID" {
		t.Fatalf("expected default paymentStatus NOT_PAID, got %q", order.PaymentStatus)
	}

	draft := testDraft()
	draft.OrderStatus = "CONFIRMED"
	draft.PaymentStatus = "PAID"
	order, err = buildOrder(draft, userID, cart, products, time.Now())
	if err != nil {
		t.Fatalf("buildOrder returned error: %v", err)
	}
	if order.OrderStatus != "CONFIRMED" || order.PaymentStatus != "PAID" {
		t.Fatalf("expected draft statuses kept, got %q/%q", order.OrderStatus, order.PaymentStatus)
	}
}

func TestBuildOrderFailsOnUnresolvableProduct(t *testing.T) {
	userID := primitive.NewObjectID()
	cart := models.Cart{
		ID:     "cart-1",
		UserID: userID,
		Items:  []models.CartItem{{ItemID: "i-1", ProductID: primitive.NewObjectID(), Quantity: 1}},
	}

	_, err := buildOrder(testDraft(), userID, cart, map[primitive.ObjectID]models.Product{}, time.Now())
	if err == nil {
		t.Fatal("expected error for a cart line whose product is gone")
	}
}

package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeapi/internal/models"
)

type orderDraft struct {
	OrderStatus    string `json:"orderStatus"`
	PaymentStatus  string `json:"paymentStatus"`
	BillingAddress string `json:"billingAddress" binding:"required"`
	BillingName    string `json:"billingName" binding:"required"`
	BillingPhone   string `json:"billingPhone" binding:"required"`
}

var errEmptyCart = errors.New("cart has no items")

// buildOrder derives the immutable order snapshot from the cart and the
// current catalog. Line totals are recomputed from today's price and
// discount, never copied from the cart's cached values, so a price change
// between add-to-cart and checkout is reflected here. Order date and
// delivered date are server-controlled regardless of the draft.
func buildOrder(draft orderDraft, userID primitive.ObjectID, cart models.Cart, products map[primitive.ObjectID]models.Product, now time.Time) (models.Order, error) {
	if len(cart.Items) == 0 {
		return models.Order{}, errEmptyCart
	}

	orderStatus := strings.TrimSpace(draft.OrderStatus)
	if orderStatus == "" {
		orderStatus = "PENDING"
	}
	paymentStatus := strings.TrimSpace(draft.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = "NOT_PAID"
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, cartItem := range cart.Items {
		product, ok := products[cartItem.ProductID]
		if !ok {
			return models.Order{}, fmt.Errorf("product %s not found", cartItem.ProductID.Hex())
		}
		price := lineTotal(cartItem.Quantity, product.Price, product.DiscountedPrice)
		items = append(items, models.OrderItem{
			ProductID:  product.ID,
			Title:      product.Title,
			Quantity:   cartItem.Quantity,
			TotalPrice: price,
		})
		total += price
	}

	return models.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrderStatus:    orderStatus,
		PaymentStatus:  paymentStatus,
		TotalAmount:    total,
		BillingAddress: strings.TrimSpace(draft.BillingAddress),
		BillingName:    strings.TrimSpace(draft.BillingName),
		BillingPhone:   strings.TrimSpace(draft.BillingPhone),
		OrderDate:      now,
		DeliveredDate:  nil,
		Items:          items,
	}, nil
}

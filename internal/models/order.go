package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is an immutable snapshot of a cart line at finalization time.
type OrderItem struct {
	ProductID  primitive.ObjectID `bson:"productId" json:"productId"`
	Title      string             `bson:"title" json:"title"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
}

// Order defines the persisted order document. Items and TotalAmount are
// frozen at creation; only the status, delivery and billing fields may be
// updated afterwards.
type Order struct {
	ID             string             `bson:"_id" json:"orderId"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	OrderStatus    string             `bson:"orderStatus" json:"orderStatus"`
	PaymentStatus  string             `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount    float64            `bson:"totalAmount" json:"totalAmount"`
	BillingAddress string             `bson:"billingAddress" json:"billingAddress"`
	BillingName    string             `bson:"billingName" json:"billingName"`
	BillingPhone   string             `bson:"billingPhone" json:"billingPhone"`
	OrderDate      time.Time          `bson:"orderDate" json:"orderDate"`
	DeliveredDate  *time.Time         `bson:"deliveredDate,omitempty" json:"deliveredDate,omitempty"`
	Items          []OrderItem        `bson:"items" json:"items"`
}

package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeapi/internal/models"
)

type cartNotFoundError struct{ CartID string }

func (e cartNotFoundError) Error() string { return "cart not found" }

type productNotFoundError struct{ ProductID primitive.ObjectID }

func (e productNotFoundError) Error() string { return "product not found" }

// CreateOrder finalizes the named cart into an immutable order. The order
// insert and the cart clear run in one mongo transaction: either the order
// exists and the cart is empty, or neither happened.
func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/create/user/:userId/cart/:cartId"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var draft orderDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid userId")
			return
		}
		cartID := c.Param("cartId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var order models.Order
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			// The caller names the exact cart it expects to finalize;
			// it is not re-derived from the user.
			var cart models.Cart
			if err := db.Collection("carts").FindOne(sessCtx, bson.M{"_id": cartID}).Decode(&cart); err != nil {
				if err == mongo.ErrNoDocuments {
					return nil, cartNotFoundError{CartID: cartID}
				}
				return nil, err
			}

			products := make(map[primitive.ObjectID]models.Product, len(cart.Items))
			for _, item := range cart.Items {
				var product models.Product
				err := db.Collection("products").FindOne(sessCtx, bson.M{
					"_id":       item.ProductID,
					"isDeleted": bson.M{"$ne": true},
				}).Decode(&product)
				if err == mongo.ErrNoDocuments {
					return nil, productNotFoundError{ProductID: item.ProductID}
				}
				if err != nil {
					return nil, err
				}
				products[product.ID] = product
			}

			built, err := buildOrder(draft, userID, cart, products, time.Now())
			if err != nil {
				return nil, err
			}

			if _, err := db.Collection("orders").InsertOne(sessCtx, built); err != nil {
				return nil, err
			}

			if _, err := db.Collection("carts").UpdateOne(sessCtx,
				bson.M{"_id": cart.ID},
				bson.M{"$set": bson.M{"items": []models.CartItem{}}},
			); err != nil {
				return nil, err
			}

			order = built
			return nil, nil
		})
		if err != nil {
			var cartErr cartNotFoundError
			if errors.As(err, &cartErr) {
				respondWithError(c, http.StatusNotFound, route, "cart not found")
				return
			}
			var productErr productNotFoundError
			if errors.As(err, &productErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product not found",
					"productId": productErr.ProductID.Hex(),
				})
				return
			}
			if errors.Is(err, errEmptyCart) {
				respondWithError(c, http.StatusBadRequest, route, "cart is empty")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order created:", order.ID, "for user:", userID.Hex())
		c.JSON(http.StatusCreated, order)
	}
}

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders/:orderId"
		defer handlePanic(c, route)

		orderID := c.Param("orderId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		log.Println("[ORDER] [INFO] order deleted:", orderID)
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

// GetUserOrders lists every order owned by one user, unordered.
func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:userId"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid userId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := []models.Order{}
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

// GetOrders is the unrestricted paged listing. Out-of-range pages return an
// empty content list with correct metadata rather than an error.
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		page, size, err := parsePaginationParams(c.Query("pageNumber"), c.Query("pageSize"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		findOptions := options.Find().
			SetSort(orderSort(c.Query("sortBy"), c.Query("sortDir"))).
			SetSkip((page - 1) * size).
			SetLimit(size)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := []models.Order{}
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"content":    orders,
			"pagination": buildPageMeta(page, size, total),
		})
	}
}

type updateOrderRequest struct {
	OrderStatus    string     `json:"orderStatus"`
	PaymentStatus  string     `json:"paymentStatus"`
	DeliveredDate  *time.Time `json:"deliveredDate"`
	BillingAddress string     `json:"billingAddress"`
	BillingName    string     `json:"billingName"`
	BillingPhone   string     `json:"billingPhone"`
}

// UpdateOrder overwrites the mutable fields only. Items and totalAmount are
// frozen at creation and cannot change through this path.
func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /orders/update/:orderId"
		defer handlePanic(c, route)

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		orderID := c.Param("orderId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		update := bson.M{"$set": bson.M{
			"orderStatus":    req.OrderStatus,
			"paymentStatus":  req.PaymentStatus,
			"deliveredDate":  req.DeliveredDate,
			"billingAddress": req.BillingAddress,
			"billingName":    req.BillingName,
			"billingPhone":   req.BillingPhone,
		}}

		var order models.Order
		err := db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": orderID},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&order)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[ORDER] [INFO] order updated:", orderID)
		c.JSON(http.StatusOK, order)
	}
}

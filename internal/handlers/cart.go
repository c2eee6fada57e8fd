package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeapi/internal/models"
)

type addItemToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// AddItemToCart merges a product into the caller's cart, creating the cart
// on first use. An existing entry for the product has its quantity replaced
// and its line total repriced from the current catalog values.
func AddItemToCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /carts/:userId"
		defer handlePanic(c, route)

		var req addItemToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if req.Quantity <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "quantity must be greater than zero")
			return
		}

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid userId")
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
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

		var product models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Lazy creation: carts do not exist until the first add.
		carts := db.Collection("carts")
		upsert := bson.M{"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"userId":    userID,
			"createdAt": time.Now(),
			"items":     []models.CartItem{},
		}}
		var cart models.Cart
		err = carts.FindOneAndUpdate(
			ctx,
			bson.M{"userId": userID},
			upsert,
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(&cart)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		res, err := carts.UpdateOne(ctx,
			cartItemMatchFilter(cart.ID, productID),
			cartItemReplaceUpdate(product, req.Quantity),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			item := newCartItem(product, req.Quantity)
			appended, err := carts.UpdateOne(ctx,
				cartItemAbsentFilter(cart.ID, productID),
				cartItemAppendUpdate(item),
			)
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if appended.MatchedCount == 0 {
				// A concurrent add won the append; replace its entry.
				if _, err := carts.UpdateOne(ctx,
					cartItemMatchFilter(cart.ID, productID),
					cartItemReplaceUpdate(product, req.Quantity),
				); err != nil {
					respondWithError(c, http.StatusInternalServerError, route, "db error")
					return
				}
			}
		}

		if err := carts.FindOne(ctx, bson.M{"_id": cart.ID}).Decode(&cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[CART] [INFO] item merged into cart:", cart.ID)
		c.JSON(http.StatusOK, cart)
	}
}

// RemoveItemFromCart deletes a single item, guarding against item ids that
// belong to another user's cart.
func RemoveItemFromCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /carts/:userId/items/:itemId"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid userId")
			return
		}
		itemID := c.Param("itemId")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		carts := db.Collection("carts")

		var cart models.Cart
		if err := carts.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "cart not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !cartOwnsItem(cart, itemID) {
			// The item may exist in someone else's cart; that is a
			// cross-tenant access attempt, not a plain miss.
			count, err := carts.CountDocuments(ctx, bson.M{"items.itemId": itemID})
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if count > 0 {
				log.Println("[CART] [ERROR] item belongs to another cart:", itemID)
				respondWithError(c, http.StatusBadRequest, route, "item does not belong to this cart")
				return
			}
			respondWithError(c, http.StatusNotFound, route, "cart item not found")
			return
		}

		if _, err := carts.UpdateOne(ctx,
			bson.M{"_id": cart.ID},
			bson.M{"$pull": bson.M{"items": bson.M{"itemId": itemID}}},
		); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[CART] [INFO] item removed from cart:", cart.ID)
		c.JSON(http.StatusOK, gin.H{"message": "item removed"})
	}
}

// ClearCart empties the item set. The cart itself survives.
func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /carts/:userId"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid userId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("carts").UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{"$set": bson.M{"items": []models.CartItem{}}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "cart not found")
			return
		}

		log.Println("[CART] [INFO] cart cleared for user:", userID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}

// GetCart returns the cart projection. A user who never added anything has
// no cart, which is a legitimate not-found.
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /carts/:userId"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid userId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		if err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "cart not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

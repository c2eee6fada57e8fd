package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storeapi/internal/models"
)

var (
	errUserNotFound         = errors.New("user not found")
	errRefreshTokenNotFound = errors.New("refresh token not found")
	errRefreshTokenExpired  = errors.New("refresh token expired")
)

// createRefreshToken rotates the user's single refresh-token row: a fresh
// value and a fresh TTL window every call, overwriting in place. Calling it
// on every login never stacks a second row.
func createRefreshToken(ctx context.Context, db *mongo.Database, email string, ttl time.Duration) (models.RefreshToken, error) {
	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.RefreshToken{}, errUserNotFound
		}
		return models.RefreshToken{}, err
	}

	value := newRefreshValue()
	if value == "" {
		return models.RefreshToken{}, errors.New("could not generate refresh token")
	}

	now := time.Now()
	var token models.RefreshToken
	err := db.Collection("refresh_tokens").FindOneAndUpdate(
		ctx,
		bson.M{"userId": user.ID},
		bson.M{
			"$set":         bson.M{"token": value, "expiresAt": now.Add(ttl)},
			"$setOnInsert": bson.M{"userId": user.ID, "createdAt": now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&token)
	if err != nil {
		return models.RefreshToken{}, err
	}

	log.Println("[AUTH] [INFO] refresh token rotated for user:", user.Email)
	return token, nil
}

func findRefreshToken(ctx context.Context, db *mongo.Database, value string) (models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Collection("refresh_tokens").FindOne(ctx, bson.M{"token": value}).Decode(&token); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.RefreshToken{}, errRefreshTokenNotFound
		}
		return models.RefreshToken{}, err
	}
	return token, nil
}

func refreshTokenExpired(token models.RefreshToken, now time.Time) bool {
	return now.After(token.ExpiresAt)
}

// verifyRefreshToken checks the TTL. An expired token is deleted on
// detection, so no later path can revalidate it. Valid tokens come back
// unchanged; verification never rotates.
func verifyRefreshToken(ctx context.Context, db *mongo.Database, token models.RefreshToken) (models.RefreshToken, error) {
	if refreshTokenExpired(token, time.Now()) {
		if _, err := db.Collection("refresh_tokens").DeleteOne(ctx, bson.M{"_id": token.ID}); err != nil {
			return models.RefreshToken{}, err
		}
		log.Println("[AUTH] [INFO] expired refresh token consumed for user:", token.UserID.Hex())
		return models.RefreshToken{}, errRefreshTokenExpired
	}
	return token, nil
}

// userByRefreshToken re-resolves the token by value instead of trusting the
// caller's copy, then returns its owner.
func userByRefreshToken(ctx context.Context, db *mongo.Database, value string) (models.User, error) {
	token, err := findRefreshToken(ctx, db, value)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": token.UserID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, errUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storeapi/internal/models"
)

var (
	errTokenMalformed = errors.New("token malformed")
	errTokenExpired   = errors.New("token expired")
	errTokenInvalid   = errors.New("token invalid")
)

// issueAccessToken signs a short-lived HS256 bearer token. It is a pure
// function of (user, secret, ttl); nothing is persisted.
func issueAccessToken(user models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseAccessToken verifies the signature and expiry and returns the claims.
// Callers get a distinguishable error per failure mode for logging; the
// client-visible outcome is the same unauthorized response either way.
func parseAccessToken(raw, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, errTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, errTokenExpired
		default:
			return nil, errTokenInvalid
		}
	}
	if !token.Valid {
		return nil, errTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errTokenInvalid
	}
	return claims, nil
}

func newRefreshValue() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}

package handlers

import (
	"testing"
	"time"

	"storeapi/internal/models"
)

func TestRefreshTokenExpiredBoundary(t *testing.T) {
	now := time.Now()
	token := models.RefreshToken{ExpiresAt: now.Add(30 * 24 * time.Hour)}

	if refreshTokenExpired(token, now) {
		t.Fatal("expected a token inside its 30-day window to be valid")
	}
	if !refreshTokenExpired(token, token.ExpiresAt.Add(time.Second)) {
		t.Fatal("expected a token past expiresAt to be expired")
	}
	if refreshTokenExpired(token, token.ExpiresAt) {
		t.Fatal("expected a token exactly at expiresAt to still be valid")
	}
}

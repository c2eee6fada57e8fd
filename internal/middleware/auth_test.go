package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	return raw
}

func runMiddleware(t *testing.T, handler gin.HandlerFunc, authorization string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/carts/abc", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}

	handler(c)
	return c, recorder
}

func TestUserAuthRejectsMissingToken(t *testing.T) {
	_, recorder := runMiddleware(t, UserAuth(testSecret), "")
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", recorder.Code)
	}
}

func TestUserAuthRejectsExpiredToken(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"sub": primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, recorder := runMiddleware(t, UserAuth(testSecret), "Bearer "+raw)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", recorder.Code)
	}
}

func TestUserAuthInjectsUserID(t *testing.T) {
	userID := primitive.NewObjectID()
	raw := signToken(t, jwt.MapClaims{
		"sub": userID.Hex(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	c, recorder := runMiddleware(t, UserAuth(testSecret), "Bearer "+raw)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", recorder.Code)
	}

	got, ok := c.Get("userId")
	if !ok {
		t.Fatal("expected userId set on context")
	}
	if got != userID {
		t.Fatalf("expected userId %v, got %v", userID, got)
	}
}

func TestAuthGuardEnforcesRole(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"sub":  primitive.NewObjectID().Hex(),
		"role": "NORMAL",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, recorder := runMiddleware(t, AdminAuth(testSecret), "Bearer "+raw)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", recorder.Code)
	}

	adminRaw := signToken(t, jwt.MapClaims{
		"sub":  primitive.NewObjectID().Hex(),
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	_, recorder = runMiddleware(t, AdminAuth(testSecret), "Bearer "+adminRaw)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected admin pass-through, got %d", recorder.Code)
	}
}

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func postCart(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/carts/abc", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "userId", Value: "abc"}}

	// a nil database proves the request is rejected before any store access
	AddItemToCart(nil)(c)
	return recorder
}

func TestAddItemToCartRejectsNonPositiveQuantity(t *testing.T) {
	for _, body := range []string{
		`{"productId":"0123456789abcdef01234567","quantity":0}`,
		`{"productId":"0123456789abcdef01234567","quantity":-3}`,
	} {
		recorder := postCart(t, body)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for body %s, got %d", body, recorder.Code)
		}
	}
}

func TestAddItemToCartRejectsMissingProduct(t *testing.T) {
	recorder := postCart(t, `{"quantity":2}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing productId, got %d", recorder.Code)
	}
}

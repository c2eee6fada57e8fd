package handlers

import "testing"

func TestValidatePricingRejectsDiscountAtOrAbovePrice(t *testing.T) {
	tests := []float64{100, 120}
	for _, discounted := range tests {
		if err := validatePricing(100, discounted); err == nil {
			t.Fatalf("expected validation error for discountedPrice=%v", discounted)
		}
	}
}

func TestValidatePricingRejectsNegativeDiscount(t *testing.T) {
	if err := validatePricing(100, -5); err == nil {
		t.Fatal("expected validation error for negative discountedPrice")
	}
}

func TestResolvePricingUpdateKeepsExistingValues(t *testing.T) {
	result, err := resolvePricingUpdate(100, 10, pricingUpdateInput{})
	if err != nil {
		t.Fatalf("resolvePricingUpdate returned error: %v", err)
	}
	if result.Price != 100 || result.DiscountedPrice != 10 {
		t.Fatalf("expected 100/10 preserved, got %v/%v", result.Price, result.DiscountedPrice)
	}
}

func TestResolvePricingUpdateRevalidatesPair(t *testing.T) {
	// dropping the price below the stored discount must fail
	newPrice := 5.0
	if _, err := resolvePricingUpdate(100, 10, pricingUpdateInput{Price: &newPrice}); err == nil {
		t.Fatal("expected error when price drops below existing discount")
	}

	newDiscount := 30.0
	result, err := resolvePricingUpdate(100, 10, pricingUpdateInput{DiscountedPrice: &newDiscount})
	if err != nil {
		t.Fatalf("resolvePricingUpdate returned error: %v", err)
	}
	if result.DiscountedPrice != 30 {
		t.Fatalf("expected discount 30, got %v", result.DiscountedPrice)
	}
}

func TestUnitPrice(t *testing.T) {
	if got := unitPrice(100, 10); got != 90 {
		t.Fatalf("expected unit price 90, got %v", got)
	}
}

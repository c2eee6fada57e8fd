package handlers

import "fmt"

type pricingUpdateInput struct {
	Price           *float64
	DiscountedPrice *float64
}

type pricingUpdateResult struct {
	Price           float64
	DiscountedPrice float64
}

// unitPrice is what one unit actually costs after the discount.
func unitPrice(price, discountedPrice float64) float64 {
	return price - discountedPrice
}

func validatePricing(price, discountedPrice float64) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than 0")
	}
	if discountedPrice < 0 {
		return fmt.Errorf("discountedPrice must not be negative")
	}
	if discountedPrice >= price {
		return fmt.Errorf("discountedPrice must be less than price")
	}
	return nil
}

// resolvePricingUpdate merges a partial price update onto the stored values
// and re-validates the pair as a whole, so a price drop cannot slip below an
// existing discount.
func resolvePricingUpdate(existingPrice, existingDiscountedPrice float64, input pricingUpdateInput) (pricingUpdateResult, error) {
	result := pricingUpdateResult{
		Price:           existingPrice,
		DiscountedPrice: existingDiscountedPrice,
	}

	if input.Price != nil {
		result.Price = *input.Price
	}
	if input.DiscountedPrice != nil {
		result.DiscountedPrice = *input.DiscountedPrice
	}

	if err := validatePricing(result.Price, result.DiscountedPrice); err != nil {
		return pricingUpdateResult{}, err
	}

	return result, nil
}

package cart

import (
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
)

func subtotal(items []domain.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return sum
}

// computeTotals derives all cart amounts from the items and pricing policy.
// Shipping is free strictly above the threshold; a subtotal exactly at the
// threshold still pays the flat fee.
func computeTotals(items []domain.CartItem, pricing config.PricingConfig) domain.Totals {
	sub := subtotal(items)

	shipping := pricing.FlatShippingFee
	if sub > pricing.FreeShippingThreshold {
		shipping = 0
	}

	tax := sub * pricing.TaxRate

	return domain.Totals{
		Subtotal: sub,
		Shipping: shipping,
		Tax:      tax,
		Total:    sub + tax + shipping,
	}
}

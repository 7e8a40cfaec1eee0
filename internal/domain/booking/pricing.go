package booking

import (
	"github.com/gearshare/service-rental/internal/domain"
)

// PricingStrategy defines the interface for calculating booking totals.
type PricingStrategy interface {
	// TotalPriceCents returns the total price in cents for renting at the
	// given per-day rate over the given date range.
	TotalPriceCents(pricePerDayCents int64, dates DateRange) (int64, error)
}

// DailyRatePricing is the standard pricing rule: per-day rate multiplied by
// the number of calendar days spanned, inclusive of both endpoints.
// 2025-07-10..2025-07-12 at 5000 cents/day totals 15000 cents.
type DailyRatePricing struct{}

// NewDailyRatePricing creates a new DailyRatePricing.
func NewDailyRatePricing() *DailyRatePricing {
	return &DailyRatePricing{}
}

// TotalPriceCents computes pricePerDayCents multiplied by the inclusive day
// count. Pure calendar-date arithmetic; time of day never participates.
func (p *DailyRatePricing) TotalPriceCents(pricePerDayCents int64, dates DateRange) (int64, error) {
	if pricePerDayCents <= 0 {
		return 0, domain.NewValidationError("price per day must be positive")
	}
	days := dates.Days()
	if days <= 0 {
		return 0, domain.NewValidationError("date range must span at least one day")
	}
	return pricePerDayCents * int64(days), nil
}

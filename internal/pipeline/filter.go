package pipeline

import "github.com/jaehyuk-choi/coupang-hotdeal-bot/internal/models"

// FilterDeals returns the deals whose discount meets minDiscount and whose
// identifier is not in notified, preserving input order. It is a pure
// function of its inputs: the same snapshot and set always yield the same
// selection, and an identifier added to the set is never selected again.
func FilterDeals(deals []models.Deal, minDiscount int, notified models.NotifiedSet) []models.Deal {
	var qualifying []models.Deal
	for _, d := range deals {
		if d.DiscountPercent < minDiscount {
			continue
		}
		if notified.Contains(d.ID()) {
			continue
		}
		qualifying = append(qualifying, d)
	}
	return qualifying
}

// Package conflict measures how much eligible driver weight disagrees about
// a market's direction.
package conflict

import (
	"math"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

// Sides sums the eligible driver weight pointing each way. Weight, not
// contribution: a strong dissenter with a mild signal still counts fully
// against consensus. Ineligible and zero-signal drivers count for neither
// side.
func Sides(drvs []domain.Driver) (support, oppose float64) {
	for _, d := range drvs {
		if !d.Eligible || d.Signal == 0 {
			continue
		}
		if d.Signal > 0 {
			support += d.Weight
		} else {
			oppose += d.Weight
		}
	}
	return support, oppose
}

// Compute returns the smaller of the two opposing weight masses. Zero means
// every eligible, non-neutral driver agrees on direction; a high value means
// real weight sits on both sides and the aggregate score hides a fight.
func Compute(drvs []domain.Driver) float64 {
	support, oppose := Sides(drvs)
	return math.Min(support, oppose)
}

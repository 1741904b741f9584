package decision

import (
	"math"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/oddsmath"
)

// computeEdge prices the score against the posted market. The side the score
// favors is compared at its vig-inclusive implied probability against a model
// probability built from the pair's no-vig fair value shifted by
// edgeScale per unit of |score|. The result is a probability ratio: +0.04
// means the model thinks the side is 4% more likely than the price charges
// for. Zero when the market cannot be priced; the flag rules report why.
func computeEdge(market domain.Market, snap *domain.OddsSnapshot, score, edgeScale float64) float64 {
	pm := posted(market, snap)
	if pm.priceA == nil || pm.priceB == nil {
		return 0
	}

	fairA, fairB, err := oddsmath.NoVigTwoWay(*pm.priceA, *pm.priceB)
	if err != nil {
		return 0
	}

	price, fair := *pm.priceA, fairA
	if score < 0 {
		price, fair = *pm.priceB, fairB
	}

	implied, err := oddsmath.ImpliedFromAmerican(price)
	if err != nil {
		return 0
	}

	model := clampProb(fair + edgeScale*math.Abs(score))
	return oddsmath.Edge(model, implied)
}

func clampProb(p float64) float64 {
	if p < 0.01 {
		return 0.01
	}
	if p > 0.99 {
		return 0.99
	}
	return p
}

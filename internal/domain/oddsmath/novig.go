package oddsmath

import "fmt"

// NoVigTwoWay strips the vig from a two-way market using the multiplicative
// method: convert both posted prices to implied probabilities, then normalize
// so the pair sums to 1. Standard for totals, spreads, and two-way
// moneylines.
//
// -110 / -110 implies 52.38% each (104.76% overround); fair is 50% / 50%.
func NoVigTwoWay(priceA, priceB int) (fairA, fairB float64, err error) {
	impA, err := ImpliedFromAmerican(priceA)
	if err != nil {
		return 0, 0, fmt.Errorf("side a: %w", err)
	}
	impB, err := ImpliedFromAmerican(priceB)
	if err != nil {
		return 0, 0, fmt.Errorf("side b: %w", err)
	}

	total := impA + impB
	if total <= 1.0 {
		// A book quoting a negative-overround pair is mispriced input,
		// not a market this engine should trust.
		return 0, 0, fmt.Errorf("degenerate price pair %d/%d: implied sum %.4f <= 1", priceA, priceB, total)
	}

	return impA / total, impB / total, nil
}

// VigPercent returns the overround of a two-way price pair in percent.
// -110 / -110 -> 4.76
func VigPercent(priceA, priceB int) (float64, error) {
	impA, err := ImpliedFromAmerican(priceA)
	if err != nil {
		return 0, fmt.Errorf("side a: %w", err)
	}
	impB, err := ImpliedFromAmerican(priceB)
	if err != nil {
		return 0, fmt.Errorf("side b: %w", err)
	}
	return (impA + impB - 1.0) * 100.0, nil
}

// Edge expresses how much better the model's probability is than the price
// taken: fair 0.55 against an implied 0.50 is a +10% edge.
func Edge(modelProb, impliedProb float64) float64 {
	if impliedProb <= 0 {
		return 0
	}
	return modelProb/impliedProb - 1.0
}

// Package oddsmath converts between American odds, decimal odds, and
// probabilities, and prices two-way markets at their no-vig fair value.
package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -150 -> 1.667
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid american odds: cannot be 0")
	}

	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds.
// 2.50 -> +150, 1.667 -> -150
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds %.4f: must be > 1.0", decimal)
	}

	if decimal >= 2.0 {
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// ImpliedFromAmerican converts American odds to the implied probability the
// price charges for, vig included. -110 -> 0.5238
func ImpliedFromAmerican(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}

// AmericanFromProbability converts a probability to the American odds that
// price it exactly. 0.50 -> +100 (never -100 by convention)
func AmericanFromProbability(p float64) (int, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("invalid probability %.4f: must be in (0, 1)", p)
	}
	return DecimalToAmerican(1.0 / p)
}

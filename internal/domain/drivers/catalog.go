// Package drivers holds the per-sport driver catalogs and the evaluator that
// turns a snapshot into audited driver records for one market.
package drivers

import (
	"fmt"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

// SignalFunc computes a driver's raw lean from the snapshot. The returned
// signal is clamped to [-1, 1] by the evaluator; the status is
// domain.DriverStatusOK or the reason the driver degraded to neutral.
// Formulas must be deterministic: same snapshot, same result.
type SignalFunc func(snap *domain.OddsSnapshot) (float64, string)

// Spec declares one driver: its identity, weight, market scoping, and
// formula. Weight applies to every eligible market unless overridden per
// market, so weight stays a fixed property of (sport, market, driver).
type Spec struct {
	Key           string
	Weight        float64
	MarketWeights map[domain.Market]float64
	Markets       []domain.Market
	Signal        SignalFunc
}

// Catalog is the immutable driver table for one sport. Specs keep their
// declaration order; every output that lists drivers follows it.
type Catalog struct {
	Sport   string
	Markets []domain.Market
	Specs   []Spec
}

// WeightFor returns the driver's weight for the market, honoring per-market
// overrides. Unknown drivers weigh nothing.
func (c *Catalog) WeightFor(market domain.Market, key string) float64 {
	for i := range c.Specs {
		if c.Specs[i].Key != key {
			continue
		}
		if w, ok := c.Specs[i].MarketWeights[market]; ok {
			return w
		}
		return c.Specs[i].Weight
	}
	return 0
}

// EligibleFor reports whether the driver may contribute to the market. The
// answer depends only on the catalog, never on the snapshot.
func (c *Catalog) EligibleFor(market domain.Market, key string) bool {
	for i := range c.Specs {
		if c.Specs[i].Key != key {
			continue
		}
		for _, m := range c.Specs[i].Markets {
			if m == market {
				return true
			}
		}
		return false
	}
	return false
}

// Validate checks the catalog's structural rules before registration:
// non-empty sport and market set, unique driver keys, non-negative weights,
// eligibility limited to the sport's markets, and a formula on every driver.
func (c *Catalog) Validate() error {
	if c.Sport == "" {
		return fmt.Errorf("catalog missing sport")
	}
	if len(c.Markets) == 0 {
		return fmt.Errorf("catalog for %s has no markets", c.Sport)
	}
	marketSet := make(map[domain.Market]bool, len(c.Markets))
	for _, m := range c.Markets {
		if !m.Valid() {
			return fmt.Errorf("catalog for %s lists invalid market %q", c.Sport, m)
		}
		if marketSet[m] {
			return fmt.Errorf("catalog for %s lists market %s twice", c.Sport, m)
		}
		marketSet[m] = true
	}

	if len(c.Specs) == 0 {
		return fmt.Errorf("catalog for %s has no drivers", c.Sport)
	}
	seen := make(map[string]bool, len(c.Specs))
	for i := range c.Specs {
		spec := &c.Specs[i]
		if spec.Key == "" {
			return fmt.Errorf("catalog for %s has a driver with no key", c.Sport)
		}
		if seen[spec.Key] {
			return fmt.Errorf("catalog for %s declares driver %s twice", c.Sport, spec.Key)
		}
		seen[spec.Key] = true

		if spec.Weight < 0 {
			return fmt.Errorf("driver %s/%s has negative weight %.3f", c.Sport, spec.Key, spec.Weight)
		}
		for m, w := range spec.MarketWeights {
			if !marketSet[m] {
				return fmt.Errorf("driver %s/%s overrides weight for foreign market %s", c.Sport, spec.Key, m)
			}
			if w < 0 {
				return fmt.Errorf("driver %s/%s has negative weight %.3f for %s", c.Sport, spec.Key, w, m)
			}
		}

		if len(spec.Markets) == 0 {
			return fmt.Errorf("driver %s/%s is eligible for no market", c.Sport, spec.Key)
		}
		for _, m := range spec.Markets {
			if !marketSet[m] {
				return fmt.Errorf("driver %s/%s is scoped to foreign market %s", c.Sport, spec.Key, m)
			}
		}

		if spec.Signal == nil {
			return fmt.Errorf("driver %s/%s has no signal formula", c.Sport, spec.Key)
		}
	}
	return nil
}

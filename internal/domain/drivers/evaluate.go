package drivers

import (
	"math"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

// Evaluate runs every catalog driver against the snapshot for one market and
// returns the records in catalog order. Ineligible drivers still evaluate
// their signal but contribute zero; drivers missing inputs report a neutral
// signal with the reason in their status. Nothing in here errors: a snapshot
// that passed validation always yields a full driver slice.
func Evaluate(c *Catalog, market domain.Market, snap *domain.OddsSnapshot) []domain.Driver {
	out := make([]domain.Driver, 0, len(c.Specs))
	for i := range c.Specs {
		spec := &c.Specs[i]

		signal, status := spec.Signal(snap)
		if status != domain.DriverStatusOK {
			signal = 0
		}
		signal = clampSignal(signal)

		d := domain.Driver{
			DriverKey: spec.Key,
			Weight:    c.WeightFor(market, spec.Key),
			Eligible:  c.EligibleFor(market, spec.Key),
			Signal:    signal,
			Status:    status,
		}
		if d.Eligible {
			d.Contrib = d.Weight * d.Signal
		}
		out = append(out, d)
	}
	return out
}

// clampSignal bounds a raw signal to [-1, 1] and neutralizes non-finite
// values so one bad formula input cannot poison a score.
func clampSignal(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

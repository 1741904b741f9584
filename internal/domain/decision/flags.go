package decision

import (
	"math"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/oddsmath"
)

// postedMarket is one market's line and two-sided prices as the book posted
// them. priceA is the side a positive score favors (Over / Home).
type postedMarket struct {
	line    *float64
	priceA  *int
	priceB  *int
	hasLine bool
}

// posted extracts the market's posted numbers from the snapshot.
func posted(market domain.Market, snap *domain.OddsSnapshot) postedMarket {
	switch market {
	case domain.MarketTotal:
		return postedMarket{line: snap.Total, priceA: snap.TotalOverPrice, priceB: snap.TotalUnderPrice, hasLine: true}
	case domain.MarketSpread:
		return postedMarket{line: snap.SpreadHome, priceA: snap.SpreadHomePrice, priceB: snap.SpreadAwayPrice, hasLine: true}
	case domain.MarketML:
		return postedMarket{priceA: snap.MoneylineHome, priceB: snap.MoneylineAway}
	default:
		return postedMarket{}
	}
}

// complete reports whether every number the market needs was posted.
func (pm postedMarket) complete() bool {
	if pm.hasLine && pm.line == nil {
		return false
	}
	return pm.priceA != nil && pm.priceB != nil
}

// evaluateFlags runs every risk rule for the market. Rules are independent
// and all that fire are reported, in a fixed order so identical inputs
// produce identical records.
func evaluateFlags(market domain.Market, snap *domain.OddsSnapshot, drvs []domain.Driver, score float64, bounds config.PriceBounds, t config.Thresholds) []domain.RiskFlag {
	var flags []domain.RiskFlag

	if badNumber(market, snap, bounds) {
		flags = append(flags, domain.FlagBadNumber)
	}
	if math.Abs(score) < t.MinInformativeScore {
		flags = append(flags, domain.FlagCoinflipZone)
	}
	if highVig(market, snap, t.MaxVigPercent) {
		flags = append(flags, domain.FlagHighVig)
	}
	if dataGap(drvs, t.DataGapRatio) {
		flags = append(flags, domain.FlagDataGap)
	}
	return flags
}

// badNumber fires when the posted numbers cannot be trusted: anything
// missing, a line outside the sport's sane range, a price outside sane
// magnitude, or a price pair the no-vig math rejects.
func badNumber(market domain.Market, snap *domain.OddsSnapshot, bounds config.PriceBounds) bool {
	pm := posted(market, snap)
	if !pm.complete() {
		return true
	}

	switch market {
	case domain.MarketTotal:
		if *pm.line < bounds.TotalMin || *pm.line > bounds.TotalMax {
			return true
		}
	case domain.MarketSpread:
		if math.Abs(*pm.line) > bounds.SpreadMax {
			return true
		}
	}

	if !sanePrice(*pm.priceA, bounds.MaxAbsPrice) || !sanePrice(*pm.priceB, bounds.MaxAbsPrice) {
		return true
	}

	// Structurally fine but jointly impossible, e.g. +120/+120.
	if _, _, err := oddsmath.NoVigTwoWay(*pm.priceA, *pm.priceB); err != nil {
		return true
	}
	return false
}

// sanePrice bounds an American price: at least the +-100 the format defines,
// at most the sport's cap.
func sanePrice(price, maxAbs int) bool {
	abs := price
	if abs < 0 {
		abs = -abs
	}
	return abs >= 100 && abs <= maxAbs
}

// highVig fires when the two-way overround exceeds the policy ceiling.
// Unpriceable pairs are BAD_NUMBER territory, not vig.
func highVig(market domain.Market, snap *domain.OddsSnapshot, maxVigPct float64) bool {
	pm := posted(market, snap)
	if pm.priceA == nil || pm.priceB == nil {
		return false
	}
	vig, err := oddsmath.VigPercent(*pm.priceA, *pm.priceB)
	if err != nil {
		return false
	}
	return vig > maxVigPct
}

// dataGap fires when too much of the market's eligible weight evaluated on
// missing or unusable inputs.
func dataGap(drvs []domain.Driver, maxRatio float64) bool {
	var eligible, degraded float64
	for _, d := range drvs {
		if !d.Eligible {
			continue
		}
		eligible += d.Weight
		if d.Degraded() {
			degraded += d.Weight
		}
	}
	if eligible == 0 {
		return false
	}
	return degraded/eligible > maxRatio
}

package domain

// DecisionStatus is the qualitative verdict on a single market.
type DecisionStatus string

const (
	// StatusPass marks a market disqualified by a hard risk flag.
	StatusPass DecisionStatus = "PASS"
	// StatusWatch marks a market with signal present but not trusted:
	// score below the informativeness threshold or drivers in conflict.
	StatusWatch DecisionStatus = "WATCH"
	// StatusAdvise marks a clear, expressible signal.
	StatusAdvise DecisionStatus = "ADVISE"
)

// RiskFlag names an independent risk condition detected on a market.
type RiskFlag string

const (
	// FlagBadNumber: posted line or price missing, outside sane bounds, or
	// degenerate. Hard-disqualifying under the default policy.
	FlagBadNumber RiskFlag = "BAD_NUMBER"
	// FlagCoinflipZone: score too close to neutral to be informative.
	FlagCoinflipZone RiskFlag = "COINFLIP_ZONE"
	// FlagHighVig: two-way overround above the policy ceiling.
	FlagHighVig RiskFlag = "HIGH_VIG"
	// FlagDataGap: too much eligible driver weight evaluated on missing data.
	FlagDataGap RiskFlag = "DATA_GAP"
)

// MarketDecision is the engine's full verdict on one market: every driver it
// looked at, the aggregate score, the priced edge, and the risk context that
// qualifies both.
type MarketDecision struct {
	Market    Market         `json:"market"`
	Drivers   []Driver       `json:"drivers"`
	Score     float64        `json:"score"`
	Edge      float64        `json:"edge"`
	Conflict  float64        `json:"conflict"`
	RiskFlags []RiskFlag     `json:"risk_flags"`
	Status    DecisionStatus `json:"status"`
	Reason    string         `json:"reason"`
}

// HasFlag reports whether the decision carries the given risk flag.
func (d *MarketDecision) HasFlag(f RiskFlag) bool {
	for _, have := range d.RiskFlags {
		if have == f {
			return true
		}
	}
	return false
}

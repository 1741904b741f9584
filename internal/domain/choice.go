package domain

// ExpressionChoice names the single market worth expressing for a game, if
// any. ChosenMarket is nil when no market qualifies; the reason always says
// why. Score, edge, and flags are copied from the winning decision so the
// choice justifies itself without a second lookup.
type ExpressionChoice struct {
	ChosenMarket *Market    `json:"chosen_market"`
	Score        float64    `json:"score"`
	Edge         float64    `json:"edge"`
	RiskFlags    []RiskFlag `json:"risk_flags,omitempty"`
	Reason       string     `json:"reason"`
}

// None reports whether the game produced no expressible market.
func (c *ExpressionChoice) None() bool {
	return c.ChosenMarket == nil
}

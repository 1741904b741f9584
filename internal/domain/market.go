package domain

import (
	"fmt"
	"strings"
)

// Market identifies one bettable market within a game.
type Market string

const (
	MarketTotal  Market = "TOTAL"
	MarketSpread Market = "SPREAD"
	MarketML     Market = "ML"
)

// ParseMarket normalizes a market label to its canonical form.
// Accepts common aliases from upstream odds feeds (totals, spreads, h2h).
func ParseMarket(s string) (Market, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TOTAL", "TOTALS", "OU", "OVER_UNDER":
		return MarketTotal, nil
	case "SPREAD", "SPREADS", "PUCK_LINE", "PUCKLINE":
		return MarketSpread, nil
	case "ML", "MONEYLINE", "H2H":
		return MarketML, nil
	default:
		return "", fmt.Errorf("unknown market %q", s)
	}
}

// Valid reports whether the market is one of the canonical values.
func (m Market) Valid() bool {
	switch m {
	case MarketTotal, MarketSpread, MarketML:
		return true
	}
	return false
}

func (m Market) String() string {
	return string(m)
}

// SideLabels returns the display names of the market's two sides in
// score-sign order: a positive score favors the first side.
func (m Market) SideLabels() (positive, negative string) {
	switch m {
	case MarketTotal:
		return "OVER", "UNDER"
	case MarketSpread, MarketML:
		return "HOME", "AWAY"
	default:
		return "A", "B"
	}
}

package domain

import (
	"encoding/json"
	"fmt"
)

// OddsSnapshot is the engine's sole input: one game's posted markets plus a
// normalized metrics bag. Line and price fields are pointers because books
// do not always post every market; absence degrades the affected market
// instead of aborting the game.
type OddsSnapshot struct {
	Sport    string `json:"sport"`
	GameID   string `json:"game_id"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`

	// Posted lines and American prices per market
	Total           *float64 `json:"total,omitempty"`
	TotalOverPrice  *int     `json:"total_over_price,omitempty"`
	TotalUnderPrice *int     `json:"total_under_price,omitempty"`
	SpreadHome      *float64 `json:"spread_home,omitempty"`
	SpreadHomePrice *int     `json:"spread_home_price,omitempty"`
	SpreadAwayPrice *int     `json:"spread_away_price,omitempty"`
	MoneylineHome   *int     `json:"moneyline_home,omitempty"`
	MoneylineAway   *int     `json:"moneyline_away,omitempty"`

	// RawData holds sport-specific metrics under flat keys. Boolean flags
	// are encoded 0/1. Individual keys may be absent; drivers that need a
	// missing key degrade to a neutral signal with a reason.
	RawData map[string]float64 `json:"raw_data"`
}

// Validate checks the required top-level fields. A failure here is the only
// condition that aborts evaluation of a game.
func (s *OddsSnapshot) Validate() error {
	if s.Sport == "" {
		return fmt.Errorf("snapshot missing required field %q", "sport")
	}
	if s.GameID == "" {
		return fmt.Errorf("snapshot missing required field %q", "game_id")
	}
	if s.HomeTeam == "" {
		return fmt.Errorf("snapshot missing required field %q", "home_team")
	}
	if s.AwayTeam == "" {
		return fmt.Errorf("snapshot missing required field %q", "away_team")
	}
	if s.RawData == nil {
		return fmt.Errorf("snapshot missing required field %q", "raw_data")
	}
	return nil
}

// Metric looks up one key in the metrics bag.
func (s *OddsSnapshot) Metric(key string) (float64, bool) {
	v, ok := s.RawData[key]
	return v, ok
}

// ParseSnapshot decodes and validates a snapshot document. Unknown fields
// are tolerated; missing required fields are not.
func ParseSnapshot(data []byte) (*OddsSnapshot, error) {
	var snap OddsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

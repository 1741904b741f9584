package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullSnapshotJSON = `{
	"sport": "nhl",
	"game_id": "2026020101",
	"home_team": "COL",
	"away_team": "WPG",
	"total": 6.5,
	"total_over_price": -110,
	"total_under_price": -110,
	"spread_home": -1.5,
	"spread_home_price": 155,
	"spread_away_price": -175,
	"moneyline_home": -140,
	"moneyline_away": 120,
	"raw_data": {
		"rest_days_home": 1,
		"rest_days_away": 0
	}
}`

func TestParseSnapshot_Valid(t *testing.T) {
	snap, err := ParseSnapshot([]byte(fullSnapshotJSON))
	require.NoError(t, err)

	assert.Equal(t, "nhl", snap.Sport)
	assert.Equal(t, "2026020101", snap.GameID)
	assert.Equal(t, "COL", snap.HomeTeam)
	assert.Equal(t, "WPG", snap.AwayTeam)

	require.NotNil(t, snap.Total)
	assert.Equal(t, 6.5, *snap.Total)
	require.NotNil(t, snap.SpreadHome)
	assert.Equal(t, -1.5, *snap.SpreadHome)
	require.NotNil(t, snap.MoneylineHome)
	assert.Equal(t, -140, *snap.MoneylineHome)
	require.NotNil(t, snap.MoneylineAway)
	assert.Equal(t, 120, *snap.MoneylineAway)
}

func TestParseSnapshot_OptionalMarketsAbsent(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{
		"sport": "nhl",
		"game_id": "g1",
		"home_team": "A",
		"away_team": "B",
		"raw_data": {}
	}`))
	require.NoError(t, err)

	assert.Nil(t, snap.Total, "unposted markets should stay nil, not zero")
	assert.Nil(t, snap.SpreadHome)
	assert.Nil(t, snap.MoneylineHome)
	assert.Nil(t, snap.MoneylineAway)
}

func TestParseSnapshot_Malformed(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"sport": "nhl",`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed snapshot")
}

func TestParseSnapshot_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{
			name:    "missing_sport",
			payload: `{"game_id": "g1", "home_team": "A", "away_team": "B", "raw_data": {}}`,
			field:   "sport",
		},
		{
			name:    "missing_game_id",
			payload: `{"sport": "nhl", "home_team": "A", "away_team": "B", "raw_data": {}}`,
			field:   "game_id",
		},
		{
			name:    "missing_home_team",
			payload: `{"sport": "nhl", "game_id": "g1", "away_team": "B", "raw_data": {}}`,
			field:   "home_team",
		},
		{
			name:    "missing_away_team",
			payload: `{"sport": "nhl", "game_id": "g1", "home_team": "A", "raw_data": {}}`,
			field:   "away_team",
		},
		{
			name:    "missing_raw_data",
			payload: `{"sport": "nhl", "game_id": "g1", "home_team": "A", "away_team": "B"}`,
			field:   "raw_data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(tt.payload))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestOddsSnapshot_Metric(t *testing.T) {
	snap := &OddsSnapshot{RawData: map[string]float64{"rest_days_home": 2}}

	v, ok := snap.Metric("rest_days_home")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = snap.Metric("rest_days_away")
	assert.False(t, ok)
}

func TestDriver_Degraded(t *testing.T) {
	assert.False(t, Driver{Status: DriverStatusOK}.Degraded())
	assert.True(t, Driver{Status: MissingDataStatus("pdo_home")}.Degraded())
	assert.Equal(t, "missing_data:pdo_home", MissingDataStatus("pdo_home"))
	assert.Equal(t, "invalid_price:moneyline", InvalidPriceStatus("moneyline"))
}

func TestMarketDecision_HasFlag(t *testing.T) {
	d := MarketDecision{RiskFlags: []RiskFlag{FlagCoinflipZone, FlagHighVig}}
	assert.True(t, d.HasFlag(FlagHighVig))
	assert.False(t, d.HasFlag(FlagBadNumber))
}

func TestExpressionChoice_None(t *testing.T) {
	c := ExpressionChoice{Reason: "all_disqualified"}
	assert.True(t, c.None())

	m := MarketML
	c = ExpressionChoice{ChosenMarket: &m}
	assert.False(t, c.None())
}

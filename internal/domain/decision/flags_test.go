package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func baseSnap() *domain.OddsSnapshot {
	return &domain.OddsSnapshot{
		Sport:           "nhl",
		GameID:          "g1",
		HomeTeam:        "A",
		AwayTeam:        "B",
		Total:           fp(6.0),
		TotalOverPrice:  ip(-110),
		TotalUnderPrice: ip(-110),
		SpreadHome:      fp(-1.5),
		SpreadHomePrice: ip(150),
		SpreadAwayPrice: ip(-170),
		MoneylineHome:   ip(-140),
		MoneylineAway:   ip(120),
		RawData:         map[string]float64{},
	}
}

func nhlBounds() config.PriceBounds {
	return config.DefaultPolicy().ForSport("nhl").Bounds
}

func TestBadNumber(t *testing.T) {
	tests := []struct {
		name   string
		market domain.Market
		mutate func(s *domain.OddsSnapshot)
		want   bool
	}{
		{"total_clean", domain.MarketTotal, func(s *domain.OddsSnapshot) {}, false},
		{"total_missing_line", domain.MarketTotal, func(s *domain.OddsSnapshot) { s.Total = nil }, true},
		{"total_missing_price", domain.MarketTotal, func(s *domain.OddsSnapshot) { s.TotalUnderPrice = nil }, true},
		{"total_line_too_low", domain.MarketTotal, func(s *domain.OddsSnapshot) { s.Total = fp(4.0) }, true},
		{"total_line_too_high", domain.MarketTotal, func(s *domain.OddsSnapshot) { s.Total = fp(9.0) }, true},
		{"total_price_sub_hundred", domain.MarketTotal, func(s *domain.OddsSnapshot) { s.TotalOverPrice = ip(-99) }, true},
		{"total_price_beyond_cap", domain.MarketTotal, func(s *domain.OddsSnapshot) { s.TotalUnderPrice = ip(1200) }, true},
		{"total_degenerate_pair", domain.MarketTotal, func(s *domain.OddsSnapshot) {
			s.TotalOverPrice = ip(120)
			s.TotalUnderPrice = ip(120)
		}, true},
		{"spread_clean", domain.MarketSpread, func(s *domain.OddsSnapshot) {}, false},
		{"spread_line_too_wide", domain.MarketSpread, func(s *domain.OddsSnapshot) { s.SpreadHome = fp(-4.5) }, true},
		{"ml_clean_no_line_needed", domain.MarketML, func(s *domain.OddsSnapshot) {}, false},
		{"ml_missing_side", domain.MarketML, func(s *domain.OddsSnapshot) { s.MoneylineAway = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := baseSnap()
			tt.mutate(snap)
			assert.Equal(t, tt.want, badNumber(tt.market, snap, nhlBounds()))
		})
	}
}

func TestSanePrice(t *testing.T) {
	assert.True(t, sanePrice(-110, 1000))
	assert.True(t, sanePrice(100, 1000))
	assert.True(t, sanePrice(1000, 1000))
	assert.False(t, sanePrice(-99, 1000))
	assert.False(t, sanePrice(99, 1000))
	assert.False(t, sanePrice(-1001, 1000))
	assert.False(t, sanePrice(0, 1000))
}

func TestHighVig(t *testing.T) {
	snap := baseSnap()
	assert.False(t, highVig(domain.MarketTotal, snap, 7.0), "4.76%% overround is under the ceiling")

	snap.TotalOverPrice = ip(-125)
	snap.TotalUnderPrice = ip(-125)
	assert.True(t, highVig(domain.MarketTotal, snap, 7.0), "11.1%% overround is over the ceiling")

	snap.TotalOverPrice = nil
	assert.False(t, highVig(domain.MarketTotal, snap, 7.0), "missing prices are not a vig problem")

	snap = baseSnap()
	snap.TotalOverPrice = ip(120)
	snap.TotalUnderPrice = ip(120)
	assert.False(t, highVig(domain.MarketTotal, snap, 7.0), "degenerate pairs belong to BAD_NUMBER")
}

func mkDrv(weight float64, eligible bool, status string) domain.Driver {
	return domain.Driver{DriverKey: "d", Weight: weight, Eligible: eligible, Status: status}
}

func TestDataGap(t *testing.T) {
	ok := domain.DriverStatusOK
	missing := domain.MissingDataStatus("x")

	tests := []struct {
		name string
		drvs []domain.Driver
		want bool
	}{
		{
			name: "half_of_weight_degraded",
			drvs: []domain.Driver{mkDrv(1.0, true, ok), mkDrv(1.0, true, missing)},
			want: true,
		},
		{
			name: "under_the_ratio",
			drvs: []domain.Driver{mkDrv(1.0, true, ok), mkDrv(0.3, true, missing)},
			want: false,
		},
		{
			name: "ineligible_degraded_ignored",
			drvs: []domain.Driver{mkDrv(1.0, true, ok), mkDrv(5.0, false, missing)},
			want: false,
		},
		{
			name: "no_eligible_weight",
			drvs: []domain.Driver{mkDrv(1.0, false, ok)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataGap(tt.drvs, 0.40))
		})
	}
}

func TestEvaluateFlags_FixedOrder(t *testing.T) {
	// Missing prices trip BAD_NUMBER without HIGH_VIG; a zero score trips
	// COINFLIP_ZONE; degraded weight trips DATA_GAP.
	snap := baseSnap()
	snap.TotalOverPrice = nil
	drvs := []domain.Driver{
		mkDrv(1.0, true, domain.MissingDataStatus("x")),
	}

	p := config.DefaultPolicy()
	flags := evaluateFlags(domain.MarketTotal, snap, drvs, 0, nhlBounds(), p.Thresholds)

	require.Equal(t, []domain.RiskFlag{
		domain.FlagBadNumber,
		domain.FlagCoinflipZone,
		domain.FlagDataGap,
	}, flags)
}

func TestEvaluateFlags_CleanMarket(t *testing.T) {
	drvs := []domain.Driver{mkDrv(1.0, true, domain.DriverStatusOK)}
	p := config.DefaultPolicy()

	flags := evaluateFlags(domain.MarketTotal, baseSnap(), drvs, 0.5, nhlBounds(), p.Thresholds)
	assert.Empty(t, flags)
}

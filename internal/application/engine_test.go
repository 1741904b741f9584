package application

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

func loadSnapshot(t *testing.T) *domain.OddsSnapshot {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "nhl_snapshot.json"))
	require.NoError(t, err)
	snap, err := domain.ParseSnapshot(data)
	require.NoError(t, err)
	return snap
}

func TestEngine_EvaluateGame_FullPipeline(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	eval, err := engine.EvaluateGame(loadSnapshot(t))
	require.NoError(t, err)

	assert.Equal(t, "nhl", eval.Sport)
	assert.Equal(t, "2026020411", eval.GameID)
	assert.Equal(t, "DAL", eval.HomeTeam)
	assert.Equal(t, "STL", eval.AwayTeam)

	require.Len(t, eval.Decisions, 3)
	assert.Equal(t, domain.MarketTotal, eval.Decisions[0].Market)
	assert.Equal(t, domain.MarketSpread, eval.Decisions[1].Market)
	assert.Equal(t, domain.MarketML, eval.Decisions[2].Market)

	for _, d := range eval.Decisions {
		require.Len(t, d.Drivers, 11, "every catalog driver appears on every market")

		var sum float64
		for _, drv := range d.Drivers {
			if !drv.Eligible {
				assert.Equal(t, 0.0, drv.Contrib, "%s/%s", d.Market, drv.DriverKey)
			}
			sum += drv.Contrib
		}
		assert.InDelta(t, sum, d.Score, 1e-9, "%s score must equal its contribution sum", d.Market)
	}
}

func TestEngine_EvaluateGame_MarketVerdicts(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	eval, err := engine.EvaluateGame(loadSnapshot(t))
	require.NoError(t, err)

	total, ok := eval.Decision(domain.MarketTotal)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAdvise, total.Status)
	assert.Less(t, total.Score, 0.0, "this slate leans Under")
	assert.Empty(t, total.RiskFlags)

	spread, ok := eval.Decision(domain.MarketSpread)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAdvise, spread.Status)
	assert.Greater(t, spread.Score, 0.0)

	ml, ok := eval.Decision(domain.MarketML)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAdvise, ml.Status)
	assert.Greater(t, ml.Score, spread.Score, "the moneyline stacks the price-value driver on top")
	assert.Greater(t, ml.Edge, 0.0)

	require.False(t, eval.Choice.None())
	assert.Equal(t, domain.MarketML, *eval.Choice.ChosenMarket)
	assert.Equal(t, "selected_ml_highest_score", eval.Choice.Reason)
	assert.Equal(t, ml.Score, eval.Choice.Score)

	_, ok = eval.Decision(domain.Market("PROP"))
	assert.False(t, ok)
}

func TestEngine_EvaluateGame_Deterministic(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	snap := loadSnapshot(t)

	first, err := engine.EvaluateGame(snap)
	require.NoError(t, err)
	second, err := engine.EvaluateGame(snap)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same snapshot, same bytes")
}

func TestEngine_EvaluateGame_InputErrors(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())

	_, err := engine.EvaluateGame(nil)
	require.Error(t, err)

	snap := loadSnapshot(t)
	snap.Sport = ""
	_, err = engine.EvaluateGame(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sport")

	snap = loadSnapshot(t)
	snap.Sport = "mlb"
	_, err = engine.EvaluateGame(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sport")
}

func TestEngine_EvaluateGame_UnpostedMarketDegrades(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	snap := loadSnapshot(t)
	snap.SpreadHome = nil
	snap.SpreadHomePrice = nil
	snap.SpreadAwayPrice = nil

	eval, err := engine.EvaluateGame(snap)
	require.NoError(t, err, "a missing market is a data gap, not an abort")

	spread, ok := eval.Decision(domain.MarketSpread)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPass, spread.Status)
	assert.True(t, spread.HasFlag(domain.FlagBadNumber))
	assert.Equal(t, 0.0, spread.Edge, "an unpriceable market has no edge")

	total, ok := eval.Decision(domain.MarketTotal)
	require.True(t, ok)
	assert.Equal(t, domain.StatusAdvise, total.Status, "other markets are untouched")
}

func TestEngine_EvaluateGame_MissingMetricDegradesDriver(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	snap := loadSnapshot(t)
	delete(snap.RawData, "starter_save_pct_home")

	eval, err := engine.EvaluateGame(snap)
	require.NoError(t, err)

	total, ok := eval.Decision(domain.MarketTotal)
	require.True(t, ok)
	for _, drv := range total.Drivers {
		if drv.DriverKey != "goaltending" {
			continue
		}
		assert.Equal(t, "missing_data:starter_save_pct_home", drv.Status)
		assert.Equal(t, 0.0, drv.Signal)
		assert.Equal(t, 0.0, drv.Contrib)
		return
	}
	t.Fatal("goaltending driver not found")
}

func TestEngine_Policy(t *testing.T) {
	p := config.DefaultPolicy()
	engine := NewEngine(p)
	assert.Same(t, p, engine.Policy())
}

package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

func loadSlate(t *testing.T) []*domain.OddsSnapshot {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "nhl_slate.json"))
	require.NoError(t, err)
	snaps, err := ParseSlate(data)
	require.NoError(t, err)
	return snaps
}

func TestParseSlate(t *testing.T) {
	snaps := loadSlate(t)
	require.Len(t, snaps, 3)
	assert.Equal(t, "2026020411", snaps[0].GameID)
	assert.Equal(t, "2026020413", snaps[2].GameID)
}

func TestParseSlate_Malformed(t *testing.T) {
	_, err := ParseSlate([]byte(`{"not": "an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed slate")
}

func TestParseSlate_BadEntryNamedByPosition(t *testing.T) {
	doc := `[
		{"sport": "nhl", "game_id": "g0", "home_team": "A", "away_team": "B", "raw_data": {}},
		{"sport": "nhl", "game_id": "g1", "home_team": "C", "raw_data": {}}
	]`
	_, err := ParseSlate([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slate entry 1")
	assert.Contains(t, err.Error(), "away_team")
}

func TestEvaluateSlate_OrderStable(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	snaps := loadSlate(t)

	result := engine.EvaluateSlate(context.Background(), snaps, 3)

	assert.Equal(t, 3, result.Games)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Evaluations, 3)
	for i, snap := range snaps {
		assert.Equal(t, snap.GameID, result.Evaluations[i].GameID, "results keep input order")
	}
	assert.NotEmpty(t, result.RunID)
	assert.GreaterOrEqual(t, result.DurationMS, 0.0)
}

func TestEvaluateSlate_AdvisedCount(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	result := engine.EvaluateSlate(context.Background(), loadSlate(t), 2)

	advised := 0
	for _, eval := range result.Evaluations {
		if !eval.Choice.None() {
			advised++
		}
	}
	assert.Equal(t, advised, result.Advised)
	assert.Greater(t, result.Advised, 0, "this slate has expressible games")
}

func TestEvaluateSlate_PerGameErrorsIsolated(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	snaps := loadSlate(t)
	snaps[1].Sport = "mlb"

	result := engine.EvaluateSlate(context.Background(), snaps, 2)

	assert.Equal(t, 3, result.Games)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "2026020412", result.Errors[0].GameID)
	assert.Contains(t, result.Errors[0].Error, "unsupported sport")
	assert.Len(t, result.Evaluations, 2, "healthy games still evaluate")
}

func TestEvaluateSlate_ConcurrencyClamped(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	snaps := loadSlate(t)

	for _, workers := range []int{0, 1, 16} {
		result := engine.EvaluateSlate(context.Background(), snaps, workers)
		assert.Len(t, result.Evaluations, 3, "workers=%d", workers)
		assert.Empty(t, result.Errors)
	}
}

func TestEvaluateSlate_CanceledContext(t *testing.T) {
	engine := NewEngine(config.DefaultPolicy())
	snaps := loadSlate(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := engine.EvaluateSlate(ctx, snaps, 2)

	assert.Equal(t, 3, result.Games)
	assert.Len(t, result.Errors, 3, "a dead context fails every game, not the call")
	assert.Empty(t, result.Evaluations)
	assert.Equal(t, 0, result.Advised)
}

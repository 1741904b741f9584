// Package application orchestrates the decision pipeline: snapshot in,
// per-market decisions and an expression choice out. The domain packages
// stay pure; instrumentation lives here.
package application

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/decision"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/drivers"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/selector"
)

// GameEvaluation bundles everything the engine concluded about one game.
// Decisions follow the catalog's market order, and the same snapshot always
// marshals to the same bytes: no timestamps, no ids, nothing ambient.
type GameEvaluation struct {
	Sport     string                  `json:"sport"`
	GameID    string                  `json:"game_id"`
	HomeTeam  string                  `json:"home_team"`
	AwayTeam  string                  `json:"away_team"`
	Decisions []domain.MarketDecision `json:"decisions"`
	Choice    domain.ExpressionChoice `json:"choice"`
}

// Decision returns the decision for one market, if the sport evaluates it.
func (g *GameEvaluation) Decision(market domain.Market) (*domain.MarketDecision, bool) {
	for i := range g.Decisions {
		if g.Decisions[i].Market == market {
			return &g.Decisions[i], true
		}
	}
	return nil, false
}

// Engine evaluates games under a fixed policy. Safe for concurrent use: it
// holds no mutable state between calls.
type Engine struct {
	policy  *config.Policy
	builder *decision.Builder
}

// NewEngine creates an engine bound to the given policy.
func NewEngine(policy *config.Policy) *Engine {
	return &Engine{
		policy:  policy,
		builder: decision.NewBuilder(policy),
	}
}

// Policy returns the engine's active policy.
func (e *Engine) Policy() *config.Policy {
	return e.policy
}

// EvaluateGame runs the full pipeline for one snapshot. It errors only on a
// malformed snapshot or an unsupported sport; every data problem inside a
// well-formed snapshot degrades into driver statuses and risk flags instead.
func (e *Engine) EvaluateGame(snap *domain.OddsSnapshot) (*GameEvaluation, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	catalog, err := drivers.CatalogFor(snap.Sport)
	if err != nil {
		return nil, err
	}

	decisions := make([]domain.MarketDecision, 0, len(catalog.Markets))
	for _, market := range catalog.Markets {
		drvs := drivers.Evaluate(catalog, market, snap)
		d := e.builder.Build(catalog.Sport, market, drvs, snap)
		decisions = append(decisions, d)

		log.Debug().
			Str("game_id", snap.GameID).
			Str("market", string(market)).
			Float64("score", d.Score).
			Float64("edge", d.Edge).
			Float64("conflict", d.Conflict).
			Str("status", string(d.Status)).
			Str("reason", d.Reason).
			Msg("Market decided")
	}

	choice := selector.Select(decisions, e.policy, catalog.Sport)

	evt := log.Info().
		Str("game_id", snap.GameID).
		Str("sport", catalog.Sport).
		Str("matchup", snap.AwayTeam+" @ "+snap.HomeTeam)
	if choice.None() {
		evt.Str("choice", "none").Str("reason", choice.Reason)
	} else {
		evt.Str("choice", string(*choice.ChosenMarket)).
			Float64("score", choice.Score).
			Float64("edge", choice.Edge)
	}
	evt.Msg("Game evaluated")

	return &GameEvaluation{
		Sport:     catalog.Sport,
		GameID:    snap.GameID,
		HomeTeam:  snap.HomeTeam,
		AwayTeam:  snap.AwayTeam,
		Decisions: decisions,
		Choice:    choice,
	}, nil
}

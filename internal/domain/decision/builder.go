// Package decision assembles one market's full verdict from its evaluated
// drivers: score, conflict, priced edge, risk flags, and status.
package decision

import (
	"fmt"
	"math"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/conflict"
)

// Builder turns evaluated drivers into market decisions under one policy.
type Builder struct {
	policy *config.Policy
}

// NewBuilder creates a builder bound to the given policy.
func NewBuilder(policy *config.Policy) *Builder {
	return &Builder{policy: policy}
}

// Build produces the market's decision. The score is exactly the sum of
// driver contributions; everything else qualifies that number without
// touching it.
func (b *Builder) Build(sport string, market domain.Market, drvs []domain.Driver, snap *domain.OddsSnapshot) domain.MarketDecision {
	var score float64
	for _, d := range drvs {
		score += d.Contrib
	}

	conflictMass := conflict.Compute(drvs)
	bounds := b.policy.ForSport(sport).Bounds
	flags := evaluateFlags(market, snap, drvs, score, bounds, b.policy.Thresholds)
	edge := computeEdge(market, snap, score, b.policy.Thresholds.EdgeScale)
	status, reason := b.status(score, conflictMass, flags)

	return domain.MarketDecision{
		Market:    market,
		Drivers:   drvs,
		Score:     score,
		Edge:      edge,
		Conflict:  conflictMass,
		RiskFlags: flags,
		Status:    status,
		Reason:    reason,
	}
}

// status applies the decision table. Hard flags win outright; a weak or
// contested score watches; a clear score advises.
func (b *Builder) status(score, conflictMass float64, flags []domain.RiskFlag) (domain.DecisionStatus, string) {
	for _, f := range flags {
		if b.policy.IsHard(f) {
			return domain.StatusPass, fmt.Sprintf("disqualified_by_%s", f)
		}
	}

	abs := math.Abs(score)
	t := b.policy.Thresholds
	if abs < t.MinInformativeScore {
		return domain.StatusWatch, fmt.Sprintf("score_%.2f_below_informative_%.2f", abs, t.MinInformativeScore)
	}
	if conflictMass >= t.ConflictRatio*abs {
		return domain.StatusWatch, fmt.Sprintf("conflict_%.2f_against_score_%.2f", conflictMass, abs)
	}
	return domain.StatusAdvise, "clear_signal"
}

// Package selector picks at most one market per game to express. The engine
// has opinions about every market; expressing more than one bet on the same
// game stacks correlated risk, so only the strongest qualified candidate
// survives.
package selector

import (
	"math"
	"sort"
	"strings"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

// Select reduces a game's market decisions to one expression choice.
// Hard-flagged and PASS markets never qualify regardless of score; soft
// flags ride along without disqualifying. Among qualified candidates at or
// above the informativeness floor the largest |score| wins; scores within
// the tie margin are settled by fewest soft flags, then by the sport's
// market preference order.
func Select(decisions []domain.MarketDecision, policy *config.Policy, sport string) domain.ExpressionChoice {
	if len(decisions) == 0 {
		return none("no_candidates")
	}

	survivors := make([]domain.MarketDecision, 0, len(decisions))
	for _, d := range decisions {
		if d.Status == domain.StatusPass || hardFlagged(&d, policy) {
			continue
		}
		survivors = append(survivors, d)
	}
	if len(survivors) == 0 {
		return none("all_disqualified")
	}

	floor := policy.Thresholds.MinInformativeScore
	pool := make([]domain.MarketDecision, 0, len(survivors))
	for _, d := range survivors {
		if math.Abs(d.Score) >= floor {
			pool = append(pool, d)
		}
	}
	if len(pool) == 0 {
		return none("all_below_threshold")
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return math.Abs(pool[i].Score) > math.Abs(pool[j].Score)
	})

	margin := policy.Thresholds.TieMargin
	topAbs := math.Abs(pool[0].Score)
	end := 1
	for _, d := range pool[1:] {
		if topAbs-math.Abs(d.Score) >= margin {
			break
		}
		end++
	}
	contenders := pool[:end]

	if len(contenders) == 1 {
		return chosen(contenders[0], "highest_score")
	}

	minFlags := len(contenders[0].RiskFlags)
	for _, d := range contenders[1:] {
		if len(d.RiskFlags) < minFlags {
			minFlags = len(d.RiskFlags)
		}
	}
	cleanest := make([]domain.MarketDecision, 0, len(contenders))
	for _, d := range contenders {
		if len(d.RiskFlags) == minFlags {
			cleanest = append(cleanest, d)
		}
	}
	if len(cleanest) == 1 {
		return chosen(cleanest[0], "tiebreak_flags")
	}

	sp := policy.ForSport(sport)
	winner := cleanest[0]
	for _, d := range cleanest[1:] {
		if sp.PreferenceIndex(d.Market) < sp.PreferenceIndex(winner.Market) {
			winner = d
		}
	}
	return chosen(winner, "tiebreak_preference")
}

func hardFlagged(d *domain.MarketDecision, policy *config.Policy) bool {
	for _, f := range d.RiskFlags {
		if policy.IsHard(f) {
			return true
		}
	}
	return false
}

func chosen(d domain.MarketDecision, rule string) domain.ExpressionChoice {
	market := d.Market
	return domain.ExpressionChoice{
		ChosenMarket: &market,
		Score:        d.Score,
		Edge:         d.Edge,
		RiskFlags:    d.RiskFlags,
		Reason:       "selected_" + strings.ToLower(string(market)) + "_" + rule,
	}
}

func none(reason string) domain.ExpressionChoice {
	return domain.ExpressionChoice{Reason: reason}
}

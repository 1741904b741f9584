package application

import (
	"fmt"
	"strings"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/conflict"
)

// FormatEvaluation creates a human-readable explanation of a game
// evaluation: the choice up top, then every market with its drivers, so a
// reader can audit why each number is what it is.
func FormatEvaluation(eval *GameEvaluation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s: %s @ %s\n", strings.ToUpper(eval.Sport), eval.GameID, eval.AwayTeam, eval.HomeTeam)
	if eval.Choice.None() {
		fmt.Fprintf(&b, "   Choice: none (%s)\n", eval.Choice.Reason)
	} else {
		fmt.Fprintf(&b, "   Choice: %s %s (score %+.2f, edge %+.1f%%)\n",
			*eval.Choice.ChosenMarket,
			sideLabel(*eval.Choice.ChosenMarket, eval.Choice.Score),
			eval.Choice.Score,
			eval.Choice.Edge*100)
		if len(eval.Choice.RiskFlags) > 0 {
			fmt.Fprintf(&b, "   Flags: %s\n", joinFlags(eval.Choice.RiskFlags))
		}
	}

	b.WriteString("\n📊 Market Details:\n")
	for i := range eval.Decisions {
		d := &eval.Decisions[i]
		fmt.Fprintf(&b, "   %s %s: %s (%s)\n", statusIcon(d.Status), d.Market, d.Status, d.Reason)

		support, oppose := conflict.Sides(d.Drivers)
		fmt.Fprintf(&b, "      score %+.2f (lean %s) | edge %+.1f%% | conflict %.2f (for %.2f / against %.2f) | flags: %s\n",
			d.Score, sideLabel(d.Market, d.Score), d.Edge*100, d.Conflict, support, oppose, joinFlags(d.RiskFlags))

		for _, drv := range d.Drivers {
			note := ""
			switch {
			case !drv.Eligible:
				note = " [not eligible]"
			case drv.Degraded():
				note = " [" + drv.Status + "]"
			}
			fmt.Fprintf(&b, "      • %-18s w %.2f  signal %+.2f  contrib %+.2f%s\n",
				drv.DriverKey, drv.Weight, drv.Signal, drv.Contrib, note)
		}
	}

	return b.String()
}

// FormatSlateSummary creates a per-game summary of a slate run.
func FormatSlateSummary(result *SlateResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Slate %s: %d games, %d advised, %d errors (%.1f ms)\n",
		result.RunID, result.Games, result.Advised, len(result.Errors), result.DurationMS)

	for _, eval := range result.Evaluations {
		if eval.Choice.None() {
			fmt.Fprintf(&b, "   ➖ %-12s %s @ %s: none (%s)\n",
				eval.GameID, eval.AwayTeam, eval.HomeTeam, eval.Choice.Reason)
			continue
		}
		fmt.Fprintf(&b, "   ✅ %-12s %s @ %s: %s %s score %+.2f edge %+.1f%%\n",
			eval.GameID, eval.AwayTeam, eval.HomeTeam,
			*eval.Choice.ChosenMarket,
			sideLabel(*eval.Choice.ChosenMarket, eval.Choice.Score),
			eval.Choice.Score,
			eval.Choice.Edge*100)
	}
	for _, gameErr := range result.Errors {
		fmt.Fprintf(&b, "   ❌ %-12s error: %s\n", gameErr.GameID, gameErr.Error)
	}

	return b.String()
}

// sideLabel names the side of the market the score points at.
func sideLabel(m domain.Market, score float64) string {
	positive, negative := m.SideLabels()
	if score < 0 {
		return negative
	}
	return positive
}

func joinFlags(flags []domain.RiskFlag) string {
	if len(flags) == 0 {
		return "-"
	}
	labels := make([]string, len(flags))
	for i, f := range flags {
		labels[i] = string(f)
	}
	return strings.Join(labels, ",")
}

func statusIcon(s domain.DecisionStatus) string {
	switch s {
	case domain.StatusAdvise:
		return "✅"
	case domain.StatusWatch:
		return "⚠️"
	default:
		return "❌"
	}
}

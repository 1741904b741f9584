package drivers

import (
	"math"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/oddsmath"
)

// Metrics bag keys for NHL snapshots. Per-game rates are season to date;
// save percentages are the listed starters'; boolean flags are 0/1.
const (
	KeyGoalsForPGHome     = "goals_for_pg_home"
	KeyGoalsForPGAway     = "goals_for_pg_away"
	KeyGoalsAgainstPGHome = "goals_against_pg_home"
	KeyGoalsAgainstPGAway = "goals_against_pg_away"
	KeyShotsForPGHome     = "shots_for_pg_home"
	KeyShotsForPGAway     = "shots_for_pg_away"
	KeyRestDaysHome       = "rest_days_home"
	KeyRestDaysAway       = "rest_days_away"
	KeyStarterSavePctHome = "starter_save_pct_home"
	KeyStarterSavePctAway = "starter_save_pct_away"
	KeyPPPctHome          = "pp_pct_home"
	KeyPPPctAway          = "pp_pct_away"
	KeyPKPctHome          = "pk_pct_home"
	KeyPKPctAway          = "pk_pct_away"
	KeyPDOHome            = "pdo_home"
	KeyPDOAway            = "pdo_away"
	KeyDivisionalGame     = "divisional_game"
)

// League baselines the NHL formulas center on. rest_days counts full days
// off before the game, so 0 is the second night of a back-to-back and 1 is
// the normal cadence.
const (
	nhlAvgShotsPG   = 30.0
	nhlAvgSavePct   = 0.905
	nhlAvgPPPct     = 20.0
	nhlAvgPKPct     = 80.0
	nhlNormalRest   = 1.0
	nhlHomeIceGoals = 0.18
)

// NHL catalog. Sign conventions: TOTAL signals are positive toward the Over;
// SPREAD and ML signals are positive toward the home side. rest, pace, and
// pdoRegression read on game environment, not relative team strength, so
// they stay scoped to TOTAL.
func init() {
	Register(&Catalog{
		Sport:   "nhl",
		Markets: []domain.Market{domain.MarketTotal, domain.MarketSpread, domain.MarketML},
		Specs: []Spec{
			{Key: "scoringRates", Weight: 1.00, Markets: []domain.Market{domain.MarketTotal}, Signal: nhlScoringRates},
			{Key: "goaltending", Weight: 0.70, Markets: []domain.Market{domain.MarketTotal}, Signal: nhlGoaltending},
			{Key: "rest", Weight: 0.60, Markets: []domain.Market{domain.MarketTotal}, Signal: nhlRest},
			{Key: "pace", Weight: 0.55, Markets: []domain.Market{domain.MarketTotal}, Signal: nhlPace},
			{Key: "pdoRegression", Weight: 0.45, Markets: []domain.Market{domain.MarketTotal}, Signal: nhlPDORegression},
			{Key: "specialTeams", Weight: 0.40, Markets: []domain.Market{domain.MarketTotal}, Signal: nhlSpecialTeams},
			{Key: "situational", Weight: 0.25, Markets: []domain.Market{domain.MarketTotal}, Signal: nhlSituational},
			{
				Key:    "teamStrength",
				Weight: 1.00,
				MarketWeights: map[domain.Market]float64{
					domain.MarketSpread: 0.90,
					domain.MarketML:     1.10,
				},
				Markets: []domain.Market{domain.MarketSpread, domain.MarketML},
				Signal:  nhlTeamStrength,
			},
			{Key: "goalieEdge", Weight: 0.65, Markets: []domain.Market{domain.MarketSpread, domain.MarketML}, Signal: nhlGoalieEdge},
			{Key: "specialTeamsEdge", Weight: 0.35, Markets: []domain.Market{domain.MarketSpread}, Signal: nhlSpecialTeamsEdge},
			{Key: "priceValue", Weight: 0.80, Markets: []domain.Market{domain.MarketML}, Signal: nhlPriceValue},
		},
	})
}

// nhlScoringRates compares the matchup's expected total (each offense
// against the opposing defense) to the posted number.
func nhlScoringRates(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyGoalsForPGHome, KeyGoalsAgainstPGHome, KeyGoalsForPGAway, KeyGoalsAgainstPGAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	if snap.Total == nil {
		return 0, domain.MissingDataStatus("total")
	}
	gfH, gaH, gfA, gaA := vals[0], vals[1], vals[2], vals[3]
	expected := (gfH+gaA)/2 + (gfA+gaH)/2
	return squash(0.9 * (expected - *snap.Total)), domain.DriverStatusOK
}

// nhlGoaltending reads the combined starter quality: hot starters suppress
// totals, weak ones leak.
func nhlGoaltending(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyStarterSavePctHome, KeyStarterSavePctAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	combined := vals[0] + vals[1]
	return -squash(40 * (combined - 2*nhlAvgSavePct)), domain.DriverStatusOK
}

// nhlRest leans Over on short rest. Only fatigue moves the number: tired
// legs and backup goalies leak goals, while extra rest is no Under signal of
// the same size.
func nhlRest(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyRestDaysHome, KeyRestDaysAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	fatigue := math.Max(0, nhlNormalRest-vals[0]) + math.Max(0, nhlNormalRest-vals[1])
	return squash(0.45 * fatigue), domain.DriverStatusOK
}

// nhlPace maps combined shot volume against the league rate.
func nhlPace(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyShotsForPGHome, KeyShotsForPGAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	return squash((vals[0] + vals[1] - 2*nhlAvgShotsPG) / 8.0), domain.DriverStatusOK
}

// nhlPDORegression fades combined percentage luck: teams running hot give
// the bounces back.
func nhlPDORegression(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyPDOHome, KeyPDOAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	return -squash((vals[0] + vals[1] - 200.0) / 5.0), domain.DriverStatusOK
}

// nhlSpecialTeams leans Over when the power plays in the building are
// stronger than the penalty kills.
func nhlSpecialTeams(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyPPPctHome, KeyPPPctAway, KeyPKPctHome, KeyPKPctAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	ppEdge := vals[0] + vals[1] - 2*nhlAvgPPPct
	pkLeak := 2*nhlAvgPKPct - (vals[2] + vals[3])
	return squash((ppEdge + pkLeak) / 12.0), domain.DriverStatusOK
}

// nhlSituational leans Under in divisional games, which check tighter.
func nhlSituational(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyDivisionalGame)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	if vals[0] >= 0.5 {
		return -0.35, domain.DriverStatusOK
	}
	return 0, domain.DriverStatusOK
}

// nhlTeamStrength maps the goal-differential gap plus home ice onto the home
// side.
func nhlTeamStrength(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyGoalsForPGHome, KeyGoalsAgainstPGHome, KeyGoalsForPGAway, KeyGoalsAgainstPGAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	diffGap := (vals[0] - vals[1]) - (vals[2] - vals[3])
	return squash(1.1 * (diffGap + nhlHomeIceGoals)), domain.DriverStatusOK
}

// nhlGoalieEdge maps the starter save-percentage gap onto the home side.
func nhlGoalieEdge(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyStarterSavePctHome, KeyStarterSavePctAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	return squash(55 * (vals[0] - vals[1])), domain.DriverStatusOK
}

// nhlSpecialTeamsEdge maps the net special-teams gap onto the home side.
func nhlSpecialTeamsEdge(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyPPPctHome, KeyPPPctAway, KeyPKPctHome, KeyPKPctAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	net := (vals[0] + vals[2]) - (vals[1] + vals[3])
	return squash(net / 10.0), domain.DriverStatusOK
}

// nhlPriceValue compares a goal-differential win model to the no-vig
// probability implied by the posted moneyline pair. Positive means the
// market underprices the home side.
func nhlPriceValue(snap *domain.OddsSnapshot) (float64, string) {
	vals, status := need(snap, KeyGoalsForPGHome, KeyGoalsAgainstPGHome, KeyGoalsForPGAway, KeyGoalsAgainstPGAway)
	if status != domain.DriverStatusOK {
		return 0, status
	}
	if snap.MoneylineHome == nil {
		return 0, domain.MissingDataStatus("moneyline_home")
	}
	if snap.MoneylineAway == nil {
		return 0, domain.MissingDataStatus("moneyline_away")
	}

	fairHome, _, err := oddsmath.NoVigTwoWay(*snap.MoneylineHome, *snap.MoneylineAway)
	if err != nil {
		return 0, domain.InvalidPriceStatus("moneyline")
	}

	diffGap := (vals[0] - vals[1]) - (vals[2] - vals[3])
	model := logistic(1.3*diffGap + 0.25)
	return squash(6 * (model - fairHome)), domain.DriverStatusOK
}

// need fetches metric keys in order and reports the first missing one.
func need(snap *domain.OddsSnapshot, keys ...string) ([]float64, string) {
	vals := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := snap.Metric(k)
		if !ok {
			return nil, domain.MissingDataStatus(k)
		}
		vals[i] = v
	}
	return vals, domain.DriverStatusOK
}

// squash maps an unbounded formula output into (-1, 1).
func squash(v float64) float64 {
	return math.Tanh(v)
}

// logistic maps a logit onto (0, 1).
func logistic(v float64) float64 {
	return 0.5 * (1 + math.Tanh(v/2))
}

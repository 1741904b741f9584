package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/application"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/config"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/drivers"
)

// selftestSnapshot is a fully populated NHL game used for offline checks.
const selftestSnapshot = `{
  "sport": "nhl",
  "game_id": "selftest-nhl-001",
  "home_team": "COL",
  "away_team": "CHI",
  "total": 6.5,
  "total_over_price": -110,
  "total_under_price": -110,
  "spread_home": -1.5,
  "spread_home_price": 150,
  "spread_away_price": -170,
  "moneyline_home": -135,
  "moneyline_away": 115,
  "raw_data": {
    "goals_for_pg_home": 3.4,
    "goals_for_pg_away": 2.7,
    "goals_against_pg_home": 2.8,
    "goals_against_pg_away": 3.2,
    "shots_for_pg_home": 32.5,
    "shots_for_pg_away": 29.0,
    "rest_days_home": 2,
    "rest_days_away": 0,
    "starter_save_pct_home": 0.915,
    "starter_save_pct_away": 0.897,
    "pp_pct_home": 24.5,
    "pp_pct_away": 17.0,
    "pk_pct_home": 82.0,
    "pk_pct_away": 77.5,
    "pdo_home": 101.8,
    "pdo_away": 98.4,
    "divisional_game": 0
  }
}`

type selfCheck struct {
	name string
	run  func() error
}

func runSelfTest(cmd *cobra.Command, args []string) error {
	checks := []selfCheck{
		{"default_policy_valid", checkDefaultPolicy},
		{"driver_catalogs_valid", checkCatalogs},
		{"evaluation_deterministic", checkDeterminism},
		{"score_accounting", checkScoreAccounting},
		{"market_coverage", checkMarketCoverage},
	}

	fmt.Printf("Running %d offline checks\n\n", len(checks))

	failed := 0
	for _, check := range checks {
		if err := check.run(); err != nil {
			fmt.Printf("  ❌ %-26s %v\n", check.name, err)
			failed++
			continue
		}
		fmt.Printf("  ✅ %s\n", check.name)
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("self-test failed: %d of %d checks", failed, len(checks))
	}
	fmt.Println("All checks passed")
	return nil
}

func checkDefaultPolicy() error {
	return config.DefaultPolicy().Validate()
}

func checkCatalogs() error {
	sports := drivers.Sports()
	if len(sports) == 0 {
		return fmt.Errorf("no catalogs registered")
	}
	for _, sport := range sports {
		catalog, err := drivers.CatalogFor(sport)
		if err != nil {
			return err
		}
		if err := catalog.Validate(); err != nil {
			return fmt.Errorf("%s: %w", sport, err)
		}
	}
	return nil
}

func selftestEvaluate() (*application.GameEvaluation, error) {
	snap, err := domain.ParseSnapshot([]byte(selftestSnapshot))
	if err != nil {
		return nil, err
	}
	return application.NewEngine(config.DefaultPolicy()).EvaluateGame(snap)
}

func checkDeterminism() error {
	first, err := selftestEvaluate()
	if err != nil {
		return err
	}
	second, err := selftestEvaluate()
	if err != nil {
		return err
	}
	a, err := json.Marshal(first)
	if err != nil {
		return err
	}
	b, err := json.Marshal(second)
	if err != nil {
		return err
	}
	if !bytes.Equal(a, b) {
		return fmt.Errorf("repeated evaluation produced different bytes")
	}
	return nil
}

func checkScoreAccounting() error {
	eval, err := selftestEvaluate()
	if err != nil {
		return err
	}
	for _, decision := range eval.Decisions {
		var sum float64
		for _, driver := range decision.Drivers {
			if !driver.Eligible && driver.Contrib != 0 {
				return fmt.Errorf("%s/%s: ineligible driver has contribution %.4f",
					decision.Market, driver.DriverKey, driver.Contrib)
			}
			sum += driver.Contrib
		}
		if math.Abs(sum-decision.Score) > 1e-9 {
			return fmt.Errorf("%s: score %.6f != contribution sum %.6f",
				decision.Market, decision.Score, sum)
		}
	}
	return nil
}

func checkMarketCoverage() error {
	eval, err := selftestEvaluate()
	if err != nil {
		return err
	}
	catalog, err := drivers.CatalogFor(eval.Sport)
	if err != nil {
		return err
	}
	if len(eval.Decisions) != len(catalog.Markets) {
		return fmt.Errorf("expected %d market decisions, got %d",
			len(catalog.Markets), len(eval.Decisions))
	}
	for _, market := range catalog.Markets {
		if _, ok := eval.Decision(market); !ok {
			return fmt.Errorf("no decision for market %s", market)
		}
	}
	return nil
}

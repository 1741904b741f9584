package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func runPolicy(cmd *cobra.Command, args []string) error {
	policy, err := policyFromFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	fmt.Println(policy.Describe())
	fmt.Println()

	t := policy.Thresholds
	fmt.Println("Thresholds:")
	fmt.Printf("  min_informative_score: %.2f\n", t.MinInformativeScore)
	fmt.Printf("  conflict_ratio:        %.2f\n", t.ConflictRatio)
	fmt.Printf("  tie_margin:            %.2f\n", t.TieMargin)
	fmt.Printf("  edge_scale:            %.2f\n", t.EdgeScale)
	fmt.Printf("  max_vig_percent:       %.1f\n", t.MaxVigPercent)
	fmt.Printf("  data_gap_ratio:        %.2f\n", t.DataGapRatio)

	fmt.Printf("\nHard flags: %s\n", strings.Join(policy.HardFlags, ", "))

	sports := make([]string, 0, len(policy.Sports))
	for sport := range policy.Sports {
		sports = append(sports, sport)
	}
	sort.Strings(sports)

	for _, sport := range sports {
		sp := policy.Sports[sport]
		fmt.Printf("\n%s:\n", strings.ToUpper(sport))
		fmt.Printf("  market_preference: %s\n", strings.Join(sp.MarketPreference, " > "))
		fmt.Printf("  total_line:        %.1f - %.1f\n", sp.Bounds.TotalMin, sp.Bounds.TotalMax)
		fmt.Printf("  spread_max:        %.1f\n", sp.Bounds.SpreadMax)
		fmt.Printf("  max_abs_price:     %d\n", sp.Bounds.MaxAbsPrice)
	}
	return nil
}

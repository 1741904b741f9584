package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/drivers"
)

func runCatalog(cmd *cobra.Command, args []string) error {
	sport, _ := cmd.Flags().GetString("sport")

	catalog, err := drivers.CatalogFor(sport)
	if err != nil {
		return err
	}

	fmt.Printf("Driver catalog for %s (%d drivers, %d markets)\n\n",
		strings.ToUpper(catalog.Sport), len(catalog.Specs), len(catalog.Markets))

	fmt.Printf("  %-22s", "DRIVER")
	for _, market := range catalog.Markets {
		fmt.Printf(" %8s", market)
	}
	fmt.Println()

	for _, spec := range catalog.Specs {
		fmt.Printf("  %-22s", spec.Key)
		for _, market := range catalog.Markets {
			if catalog.EligibleFor(market, spec.Key) {
				fmt.Printf(" %8.2f", catalog.WeightFor(market, spec.Key))
			} else {
				fmt.Printf(" %8s", "-")
			}
		}
		fmt.Println()
	}

	fmt.Println("\nWeights apply only where a driver is eligible; contributions elsewhere are zero.")
	return nil
}

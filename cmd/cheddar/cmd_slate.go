package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/application"
)

func runSlate(cmd *cobra.Command, args []string) error {
	slatePath, _ := cmd.Flags().GetString("file")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	format, _ := cmd.Flags().GetString("format")

	policy, err := policyFromFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	data, err := os.ReadFile(slatePath)
	if err != nil {
		return fmt.Errorf("failed to read slate %s: %w", slatePath, err)
	}

	snaps, err := application.ParseSlate(data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	engine := application.NewEngine(policy)
	result := engine.EvaluateSlate(ctx, snaps, concurrency)

	switch format {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode slate result: %w", err)
		}
		fmt.Println(string(out))
	default:
		fmt.Print(application.FormatSlateSummary(result))
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d of %d games failed", len(result.Errors), result.Games)
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/application"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

func runEvaluate(cmd *cobra.Command, args []string) error {
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	format, _ := cmd.Flags().GetString("format")

	policy, err := policyFromFlags(cmd.Flags())
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", snapshotPath, err)
	}

	snap, err := domain.ParseSnapshot(data)
	if err != nil {
		return err
	}

	log.Info().Str("game_id", snap.GameID).Str("sport", snap.Sport).Msg("Evaluating snapshot")

	engine := application.NewEngine(policy)
	eval, err := engine.EvaluateGame(snap)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	switch format {
	case "json":
		out, err := json.MarshalIndent(eval, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode evaluation: %w", err)
		}
		fmt.Println(string(out))
	default:
		fmt.Print(application.FormatEvaluation(eval))
	}
	return nil
}

package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appName = "cheddar"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "cheddar - cross-market betting decision engine",
		Version: version,
		Long:    "cheddar scores every market of a game snapshot from weighted domain drivers, measures internal conflict, and picks at most one market worth expressing",
	}

	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one game snapshot",
		Long:  "Runs a single snapshot through driver evaluation, conflict measurement, risk flagging, and expression selection",
		RunE:  runEvaluate,
	}
	evaluateCmd.Flags().String("snapshot", "", "Path to snapshot JSON (required)")
	_ = evaluateCmd.MarkFlagRequired("snapshot")
	addPolicyFlag(evaluateCmd.Flags())
	addFormatFlag(evaluateCmd.Flags())

	slateCmd := &cobra.Command{
		Use:   "slate",
		Short: "Evaluate a slate of snapshots concurrently",
		Long:  "Evaluates every game in a slate file with a bounded worker pool and prints a per-game summary",
		RunE:  runSlate,
	}
	slateCmd.Flags().String("file", "", "Path to slate JSON, an array of snapshots (required)")
	_ = slateCmd.MarkFlagRequired("file")
	slateCmd.Flags().Int("concurrency", 4, "Number of evaluation workers")
	addPolicyFlag(slateCmd.Flags())
	addFormatFlag(slateCmd.Flags())

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show a sport's driver catalog",
		Long:  "Prints the driver table with per-market weights and eligibility",
		RunE:  runCatalog,
	}
	catalogCmd.Flags().String("sport", "nhl", "Sport key")

	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Describe the active policy",
		Long:  "Prints the thresholds, hard flags, and per-sport settings the engine would run with",
		RunE:  runPolicy,
	}
	addPolicyFlag(policyCmd.Flags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the evaluation HTTP server",
		Long:  "Serves /health, /metrics, /evaluate, /catalog/{sport}, and /policy on a local-only address",
		RunE:  runServe,
	}
	serveCmd.Flags().String("host", "127.0.0.1", "HTTP server host")
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
	addPolicyFlag(serveCmd.Flags())

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run offline engine self-test",
		Long:  "Validates policy, catalogs, driver accounting, and evaluation determinism without touching the network",
		RunE:  runSelfTest,
	}

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(slateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(policyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(selftestCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

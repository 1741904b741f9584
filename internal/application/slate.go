package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

// SlateGameError records one game that could not be evaluated. The rest of
// the slate is unaffected.
type SlateGameError struct {
	GameID string `json:"game_id"`
	Error  string `json:"error"`
}

// SlateResult is the harness envelope around a batch evaluation. Run id,
// wall clock, and duration live here, never inside the per-game records, so
// the records themselves stay reproducible.
type SlateResult struct {
	RunID       string            `json:"run_id"`
	StartedAt   time.Time         `json:"started_at"`
	DurationMS  float64           `json:"duration_ms"`
	Games       int               `json:"games"`
	Advised     int               `json:"advised"`
	Evaluations []*GameEvaluation `json:"evaluations"`
	Errors      []SlateGameError  `json:"errors,omitempty"`
}

// ParseSlate decodes a slate document: a JSON array of snapshots. Any
// malformed entry fails the whole load, named by position, because a broken
// slate file is a caller bug rather than a data gap to degrade around.
func ParseSlate(data []byte) ([]*domain.OddsSnapshot, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("malformed slate: %w", err)
	}

	snaps := make([]*domain.OddsSnapshot, 0, len(raws))
	for i, raw := range raws {
		snap, err := domain.ParseSnapshot(raw)
		if err != nil {
			return nil, fmt.Errorf("slate entry %d: %w", i, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// EvaluateSlate evaluates a batch of snapshots with a bounded worker pool.
// Results keep the input order regardless of worker scheduling. Per-game
// failures land in Errors; a canceled context fails the not-yet-started
// games the same way.
func (e *Engine) EvaluateSlate(ctx context.Context, snaps []*domain.OddsSnapshot, concurrency int) *SlateResult {
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(snaps) && len(snaps) > 0 {
		concurrency = len(snaps)
	}

	result := &SlateResult{
		RunID:     uuid.New().String()[:8],
		StartedAt: time.Now().UTC(),
		Games:     len(snaps),
	}

	log.Info().
		Str("run_id", result.RunID).
		Int("games", len(snaps)).
		Int("concurrency", concurrency).
		Msg("Slate evaluation started")

	evals := make([]*GameEvaluation, len(snaps))
	errs := make([]error, len(snaps))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				evals[i], errs[i] = e.EvaluateGame(snaps[i])
			}
		}()
	}
	for i := range snaps {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i := range snaps {
		if errs[i] != nil {
			result.Errors = append(result.Errors, SlateGameError{
				GameID: snaps[i].GameID,
				Error:  errs[i].Error(),
			})
			continue
		}
		result.Evaluations = append(result.Evaluations, evals[i])
		if !evals[i].Choice.None() {
			result.Advised++
		}
	}

	result.DurationMS = float64(time.Since(result.StartedAt).Microseconds()) / 1000.0

	log.Info().
		Str("run_id", result.RunID).
		Int("games", result.Games).
		Int("advised", result.Advised).
		Int("errors", len(result.Errors)).
		Float64("duration_ms", result.DurationMS).
		Msg("Slate evaluation finished")

	return result
}

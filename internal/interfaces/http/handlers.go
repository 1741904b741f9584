package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/drivers"
)

const maxSnapshotBytes = 1 << 20

// healthResponse is the health endpoint payload.
type healthResponse struct {
	Status        string   `json:"status"`
	UptimeSeconds float64  `json:"uptime_seconds"`
	Sports        []string `json:"sports"`
	Evaluations   float64  `json:"evaluations"`
	AdviseRate    float64  `json:"advise_rate"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		UptimeSeconds: time.Since(s.started).Seconds(),
		Sports:        drivers.Sports(),
		Evaluations:   s.metrics.TotalEvaluations(),
		AdviseRate:    s.metrics.AdviseRate(),
	})
}

// evaluateHandler runs one snapshot through the engine. The only 4xx cases
// are a malformed snapshot and an unsupported sport; data gaps inside a
// well-formed snapshot come back as part of a 200 evaluation.
func (s *Server) evaluateHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "snapshot body unreadable or too large")
		return
	}

	snap, err := domain.ParseSnapshot(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	timer := s.metrics.StartEvaluation(snap.Sport)
	eval, err := s.engine.EvaluateGame(snap)
	if err != nil {
		timer.Stop(EvalResultError)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	timer.Stop(EvalResultSuccess)
	s.metrics.RecordEvaluation(eval)

	respondJSON(w, http.StatusOK, eval)
}

// catalogMarketInfo is one driver's standing in one market.
type catalogMarketInfo struct {
	Weight   float64 `json:"weight"`
	Eligible bool    `json:"eligible"`
}

// catalogDriverInfo is one driver row of the catalog response.
type catalogDriverInfo struct {
	Key     string                       `json:"key"`
	Markets map[string]catalogMarketInfo `json:"markets"`
}

// catalogResponse is the catalog endpoint payload.
type catalogResponse struct {
	Sport   string              `json:"sport"`
	Markets []domain.Market     `json:"markets"`
	Drivers []catalogDriverInfo `json:"drivers"`
}

func (s *Server) catalogHandler(w http.ResponseWriter, r *http.Request) {
	sport := mux.Vars(r)["sport"]
	catalog, err := drivers.CatalogFor(sport)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	resp := catalogResponse{
		Sport:   catalog.Sport,
		Markets: catalog.Markets,
	}
	for _, spec := range catalog.Specs {
		row := catalogDriverInfo{
			Key:     spec.Key,
			Markets: make(map[string]catalogMarketInfo, len(catalog.Markets)),
		}
		for _, m := range catalog.Markets {
			row.Markets[string(m)] = catalogMarketInfo{
				Weight:   catalog.WeightFor(m, spec.Key),
				Eligible: catalog.EligibleFor(m, spec.Key),
			}
		}
		resp.Drivers = append(resp.Drivers, row)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) policyHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.engine.Policy())
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	respondError(w, http.StatusNotFound, "no such endpoint: "+r.URL.Path)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, errorResponse{Error: msg})
}

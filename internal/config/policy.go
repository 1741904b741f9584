// Package config defines the engine policy: every threshold, tie-break, and
// sane-bounds knob that qualifies a score without being part of the score.
// Policy is data: changing a number here retunes the engine without changing
// what it computes.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
)

// Thresholds holds the cross-sport decision knobs.
type Thresholds struct {
	MinInformativeScore float64 `yaml:"min_informative_score" json:"min_informative_score"` // |score| below this is a coinflip (0.25)
	ConflictRatio       float64 `yaml:"conflict_ratio" json:"conflict_ratio"`               // conflict >= ratio*|score| demotes to WATCH (0.60)
	TieMargin           float64 `yaml:"tie_margin" json:"tie_margin"`                       // |score| gap under this ties candidates (0.05)
	EdgeScale           float64 `yaml:"edge_scale" json:"edge_scale"`                       // probability points per unit of |score| (0.05)
	MaxVigPercent       float64 `yaml:"max_vig_percent" json:"max_vig_percent"`             // overround above this flags HIGH_VIG (7.0)
	DataGapRatio        float64 `yaml:"data_gap_ratio" json:"data_gap_ratio"`               // degraded weight share above this flags DATA_GAP (0.40)
}

// PriceBounds holds a sport's sane ranges for posted lines and prices.
// Anything outside is a number the engine refuses to trust.
type PriceBounds struct {
	TotalMin    float64 `yaml:"total_min" json:"total_min"`
	TotalMax    float64 `yaml:"total_max" json:"total_max"`
	SpreadMax   float64 `yaml:"spread_max" json:"spread_max"`
	MaxAbsPrice int     `yaml:"max_abs_price" json:"max_abs_price"` // cap on |American price| for any side
}

// SportPolicy holds per-sport selection and bounds settings.
type SportPolicy struct {
	MarketPreference []string    `yaml:"market_preference" json:"market_preference"` // tie-break order, most preferred first
	Bounds           PriceBounds `yaml:"bounds" json:"bounds"`
}

// Policy is the complete named configuration of the decision engine.
type Policy struct {
	Thresholds Thresholds             `yaml:"thresholds" json:"thresholds"`
	HardFlags  []string               `yaml:"hard_flags" json:"hard_flags"`
	Sports     map[string]SportPolicy `yaml:"sports" json:"sports"`
}

// DefaultPolicy returns the built-in policy. It always validates; tests and
// callers without a config file run on it.
func DefaultPolicy() *Policy {
	return &Policy{
		Thresholds: Thresholds{
			MinInformativeScore: 0.25,
			ConflictRatio:       0.60,
			TieMargin:           0.05,
			EdgeScale:           0.05,
			MaxVigPercent:       7.0,
			DataGapRatio:        0.40,
		},
		HardFlags: []string{string(domain.FlagBadNumber)},
		Sports: map[string]SportPolicy{
			"nhl": {
				MarketPreference: []string{
					string(domain.MarketML),
					string(domain.MarketTotal),
					string(domain.MarketSpread),
				},
				Bounds: PriceBounds{
					TotalMin:    4.5,
					TotalMax:    8.5,
					SpreadMax:   4.0,
					MaxAbsPrice: 1000,
				},
			},
		},
	}
}

// LoadPolicy reads and validates a policy file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	return &p, nil
}

// Validate rejects out-of-range knobs before they can skew a slate.
func (p *Policy) Validate() error {
	t := p.Thresholds
	if t.MinInformativeScore <= 0 || t.MinInformativeScore >= 1 {
		return fmt.Errorf("min_informative_score %.3f out of range (0, 1)", t.MinInformativeScore)
	}
	if t.ConflictRatio <= 0 || t.ConflictRatio > 2 {
		return fmt.Errorf("conflict_ratio %.3f out of range (0, 2]", t.ConflictRatio)
	}
	if t.TieMargin < 0 || t.TieMargin > 0.5 {
		return fmt.Errorf("tie_margin %.3f out of range [0, 0.5]", t.TieMargin)
	}
	if t.EdgeScale <= 0 || t.EdgeScale > 0.5 {
		return fmt.Errorf("edge_scale %.3f out of range (0, 0.5]", t.EdgeScale)
	}
	if t.MaxVigPercent <= 0 || t.MaxVigPercent > 25 {
		return fmt.Errorf("max_vig_percent %.2f out of range (0, 25]", t.MaxVigPercent)
	}
	if t.DataGapRatio <= 0 || t.DataGapRatio > 1 {
		return fmt.Errorf("data_gap_ratio %.3f out of range (0, 1]", t.DataGapRatio)
	}

	if len(p.HardFlags) == 0 {
		return fmt.Errorf("hard_flags must name at least one flag")
	}
	known := map[string]bool{
		string(domain.FlagBadNumber):    true,
		string(domain.FlagCoinflipZone): true,
		string(domain.FlagHighVig):      true,
		string(domain.FlagDataGap):      true,
	}
	for _, f := range p.HardFlags {
		if !known[f] {
			return fmt.Errorf("unknown hard flag %q", f)
		}
	}

	for sport, sp := range p.Sports {
		seen := map[domain.Market]bool{}
		for _, label := range sp.MarketPreference {
			m, err := domain.ParseMarket(label)
			if err != nil {
				return fmt.Errorf("sport %s market_preference: %w", sport, err)
			}
			if seen[m] {
				return fmt.Errorf("sport %s market_preference lists %s twice", sport, m)
			}
			seen[m] = true
		}
		b := sp.Bounds
		if b.TotalMin <= 0 || b.TotalMax <= b.TotalMin {
			return fmt.Errorf("sport %s bounds: total range [%.1f, %.1f] invalid", sport, b.TotalMin, b.TotalMax)
		}
		if b.SpreadMax <= 0 {
			return fmt.Errorf("sport %s bounds: spread_max %.1f must be positive", sport, b.SpreadMax)
		}
		if b.MaxAbsPrice < 100 {
			return fmt.Errorf("sport %s bounds: max_abs_price %d must be at least 100", sport, b.MaxAbsPrice)
		}
	}
	return nil
}

// ForSport returns the sport's policy, falling back to conservative generic
// settings for sports without an explicit entry.
func (p *Policy) ForSport(sport string) SportPolicy {
	if sp, ok := p.Sports[strings.ToLower(sport)]; ok {
		return sp
	}
	return SportPolicy{
		MarketPreference: []string{
			string(domain.MarketML),
			string(domain.MarketTotal),
			string(domain.MarketSpread),
		},
		Bounds: PriceBounds{
			TotalMin:    0.5,
			TotalMax:    300.0,
			SpreadMax:   60.0,
			MaxAbsPrice: 2000,
		},
	}
}

// IsHard reports whether a flag disqualifies a market under this policy.
func (p *Policy) IsHard(f domain.RiskFlag) bool {
	for _, h := range p.HardFlags {
		if h == string(f) {
			return true
		}
	}
	return false
}

// PreferenceIndex returns the market's rank in the sport's tie-break order;
// unlisted markets sort last.
func (sp SportPolicy) PreferenceIndex(m domain.Market) int {
	for i, label := range sp.MarketPreference {
		if parsed, err := domain.ParseMarket(label); err == nil && parsed == m {
			return i
		}
	}
	return len(sp.MarketPreference)
}

// Describe returns a one-line summary of the active thresholds for logs and
// the policy command.
func (p *Policy) Describe() string {
	t := p.Thresholds
	return fmt.Sprintf("informative: |score| >= %.2f | conflict: >= %.2fx score -> WATCH | tie margin: %.2f | edge scale: %.2f | max vig: %.1f%% | data gap: %.0f%% | hard: %s",
		t.MinInformativeScore,
		t.ConflictRatio,
		t.TieMargin,
		t.EdgeScale,
		t.MaxVigPercent,
		t.DataGapRatio*100,
		strings.Join(p.HardFlags, ","))
}

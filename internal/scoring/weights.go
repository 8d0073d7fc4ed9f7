package scoring

import "fmt"

// FactorWeights defines the relative importance of each smart-score factor.
// Weights must be non-negative; there is no sum requirement, callers may use
// any scale they like.
type FactorWeights struct {
	Projection        float64 `json:"projection"`
	CeilingSpread     float64 `json:"ceiling_spread"`
	Ownership         float64 `json:"ownership"`
	ValueDensity      float64 `json:"value_density"`
	Trend             float64 `json:"trend"`
	RegressionPenalty float64 `json:"regression_penalty"`
	ImpliedTeamTotal  float64 `json:"implied_team_total"`
	Matchup           float64 `json:"matchup"`
}

// DefaultWeights returns an all-equal weight distribution.
func DefaultWeights() FactorWeights {
	return FactorWeights{
		Projection:        1.0,
		CeilingSpread:     1.0,
		Ownership:         1.0,
		ValueDensity:      1.0,
		Trend:             1.0,
		RegressionPenalty: 1.0,
		ImpliedTeamTotal:  1.0,
		Matchup:           1.0,
	}
}

// Validate checks that no weight is negative.
func (w FactorWeights) Validate() error {
	for name, v := range map[string]float64{
		"projection":         w.Projection,
		"ceiling_spread":     w.CeilingSpread,
		"ownership":          w.Ownership,
		"value_density":      w.ValueDensity,
		"trend":              w.Trend,
		"regression_penalty": w.RegressionPenalty,
		"implied_team_total": w.ImpliedTeamTotal,
		"matchup":            w.Matchup,
	} {
		if v < 0 {
			return fmt.Errorf("negative weight %s: %f", name, v)
		}
	}
	return nil
}

package optimizer

import "github.com/jdwhitaker/dfs-portfolio/internal/models"

// Objective maps a player to the per-slot value a solve maximizes. Captain
// slots multiply the value by 1.5 inside the solver, not here.
type Objective struct {
	Name  string
	Value func(p *models.PlayerScore) float64
}

// SmartScoreObjective maximizes total smart score (the best-score baseline).
func SmartScoreObjective() Objective {
	return Objective{
		Name:  "smart_score",
		Value: func(p *models.PlayerScore) float64 { return p.SmartScore },
	}
}

// ProjectionObjective maximizes total raw projection (the best-projection
// baseline).
func ProjectionObjective() Objective {
	return Objective{
		Name:  "projection",
		Value: func(p *models.PlayerScore) float64 { return p.Projection },
	}
}

// BlendParams tunes the strategy-mode objective blends. The thresholds are
// configuration, not constants: callers may override any of them per
// request.
type BlendParams struct {
	SmartWeight      float64 `json:"smart_weight"`
	CeilingWeight    float64 `json:"ceiling_weight"`
	FloorWeight      float64 `json:"floor_weight"`
	OwnershipPenalty float64 `json:"ownership_penalty"`
}

// DefaultBlendParams returns the tuning used when a request does not
// override it.
func DefaultBlendParams() BlendParams {
	return BlendParams{
		SmartWeight:      0.6,
		CeilingWeight:    0.5,
		FloorWeight:      0.5,
		OwnershipPenalty: 25.0,
	}
}

// BlendedObjective selects the portfolio objective for a strategy mode.
// Balanced maximizes smart score alone; ceiling leans into upside and
// penalizes projected ownership; floor leans into safety.
func BlendedObjective(mode models.StrategyMode, params BlendParams) Objective {
	switch mode {
	case models.StrategyCeiling:
		return Objective{
			Name: "blend_ceiling",
			Value: func(p *models.PlayerScore) float64 {
				return params.SmartWeight*p.SmartScore +
					params.CeilingWeight*p.Ceiling -
					params.OwnershipPenalty*p.Ownership
			},
		}
	case models.StrategyFloor:
		return Objective{
			Name: "blend_floor",
			Value: func(p *models.PlayerScore) float64 {
				return params.SmartWeight*p.SmartScore + params.FloorWeight*p.Floor
			},
		}
	default:
		return Objective{
			Name:  "blend_balanced",
			Value: func(p *models.PlayerScore) float64 { return p.SmartScore },
		}
	}
}

package models

import "fmt"

// ProjectionSources carries the raw per-field projection inputs for one
// player. Each field is independent: a player can have a calibrated median
// but only a source ceiling. Nil means the tier has no value for that field.
type ProjectionSources struct {
	CalibratedFloor   *float64 `json:"calibrated_floor,omitempty"`
	CalibratedMedian  *float64 `json:"calibrated_median,omitempty"`
	CalibratedCeiling *float64 `json:"calibrated_ceiling,omitempty"`

	SourceFloor   *float64 `json:"source_floor,omitempty"`
	SourceMedian  *float64 `json:"source_median,omitempty"`
	SourceCeiling *float64 `json:"source_ceiling,omitempty"`

	// LegacyProjection is a single point estimate from older slates. It backs
	// all three fields when the tiers above are empty.
	LegacyProjection *float64 `json:"legacy_projection,omitempty"`
}

// PlayerInput is one raw pool record as it arrives in an optimize request.
// Auxiliary signals are pointers so an absent signal is distinguishable from
// a zero one.
type PlayerInput struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Position string `json:"position" binding:"required"`
	Salary   int    `json:"salary" binding:"required"` // cents

	Projections ProjectionSources `json:"projections"`

	Ownership         *float64 `json:"ownership,omitempty"` // 0..1 projected field ownership
	TrendPct          *float64 `json:"trend_pct,omitempty"`
	RegressionPenalty *float64 `json:"regression_penalty,omitempty"` // >= 0, subtracted
	MatchupValue      *float64 `json:"matchup_value,omitempty"`
	TeamImpliedTotal  *float64 `json:"team_implied_total,omitempty"`
}

// PlayerScore is a pool record after projection resolution and smart
// scoring. Resolved fields are clamped to zero; absent fields resolve to 0
// so every player carries a finite score.
type PlayerScore struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Position string `json:"position"`
	Salary   int    `json:"salary"` // cents

	Floor      float64 `json:"floor"`
	Projection float64 `json:"projection"` // resolved median
	Ceiling    float64 `json:"ceiling"`

	// CalibrationApplied is true when any resolved field came from the
	// calibrated tier.
	CalibrationApplied bool `json:"calibration_applied"`

	Ownership  float64 `json:"ownership"`
	SmartScore float64 `json:"smart_score"`
}

// GameKey returns a direction-independent identifier for the player's game.
func (p *PlayerScore) GameKey() string {
	if p.Team < p.Opponent {
		return fmt.Sprintf("%s@%s", p.Team, p.Opponent)
	}
	return fmt.Sprintf("%s@%s", p.Opponent, p.Team)
}

// DataQualityWarning records a suspect input that was repaired during
// resolution. Warnings surface in the response; they never fail a request.
type DataQualityWarning struct {
	PlayerID string  `json:"player_id"`
	Field    string  `json:"field"`
	Value    float64 `json:"value"`
	Message  string  `json:"message"`
}

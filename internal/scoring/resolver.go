package scoring

import (
	"github.com/jdwhitaker/dfs-portfolio/internal/models"
)

// ResolvedProjections is the per-player output of the fallback chain.
// A nil field means no tier had a value for it.
type ResolvedProjections struct {
	Floor   *float64
	Median  *float64
	Ceiling *float64

	// CalibrationApplied is true when any field resolved from the
	// calibrated tier.
	CalibrationApplied bool

	Warnings []models.DataQualityWarning
}

// ResolveProjections walks the three-tier fallback chain for each of
// floor, median, and ceiling independently: calibrated value, then source
// value, then the legacy single-value projection. Negative resolved values
// clamp to zero with a data-quality warning attached; they are never
// propagated into scoring.
func ResolveProjections(playerID string, src models.ProjectionSources) ResolvedProjections {
	out := ResolvedProjections{}

	resolve := func(field string, calibrated, source *float64) *float64 {
		var v *float64
		switch {
		case calibrated != nil:
			v = calibrated
			out.CalibrationApplied = true
		case source != nil:
			v = source
		case src.LegacyProjection != nil:
			v = src.LegacyProjection
		default:
			return nil
		}
		if *v < 0 {
			out.Warnings = append(out.Warnings, models.DataQualityWarning{
				PlayerID: playerID,
				Field:    field,
				Value:    *v,
				Message:  "negative resolved projection clamped to 0",
			})
			zero := 0.0
			return &zero
		}
		resolved := *v
		return &resolved
	}

	out.Floor = resolve("floor", src.CalibratedFloor, src.SourceFloor)
	out.Median = resolve("median", src.CalibratedMedian, src.SourceMedian)
	out.Ceiling = resolve("ceiling", src.CalibratedCeiling, src.SourceCeiling)

	return out
}

package scoring

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
)

// ValueDensityScale converts projection-per-cent into projection per $1000
// of salary for the value factor.
const ValueDensityScale = 100000.0

// Engine computes the eight-factor weighted smart score for a player pool.
// Scoring is deterministic and side-effect free: the same pool and weights
// always produce the same scores.
type Engine struct {
	weights FactorWeights
	logger  *logrus.Entry
}

func NewEngine(weights FactorWeights, logger *logrus.Entry) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid factor weights: %w", err)
	}
	return &Engine{weights: weights, logger: logger}, nil
}

// ScorePool resolves projections and scores every player in the pool.
// Warnings collect clamped projections across all players; they never fail
// the request.
func (e *Engine) ScorePool(inputs []models.PlayerInput) ([]models.PlayerScore, []models.DataQualityWarning, error) {
	leagueAvgITT := leagueAverageITT(inputs)

	scored := make([]models.PlayerScore, 0, len(inputs))
	var warnings []models.DataQualityWarning

	for _, in := range inputs {
		if in.Salary <= 0 {
			return nil, nil, fmt.Errorf("player %s has non-positive salary %d", in.ID, in.Salary)
		}

		resolved := ResolveProjections(in.ID, in.Projections)
		warnings = append(warnings, resolved.Warnings...)

		p := models.PlayerScore{
			ID:                 in.ID,
			Name:               in.Name,
			Team:               in.Team,
			Opponent:           in.Opponent,
			Position:           in.Position,
			Salary:             in.Salary,
			Floor:              deref(resolved.Floor),
			Projection:         deref(resolved.Median),
			Ceiling:            deref(resolved.Ceiling),
			CalibrationApplied: resolved.CalibrationApplied,
			Ownership:          deref(in.Ownership),
		}
		p.SmartScore = e.score(&p, in, leagueAvgITT)
		scored = append(scored, p)
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"pool_size":      len(scored),
			"league_avg_itt": leagueAvgITT,
			"warnings":       len(warnings),
		}).Debug("Scored player pool")
	}

	return scored, warnings, nil
}

// score applies the weighted additive formula. Absent auxiliary signals use
// a neutral default, 0 for additive terms and 1 for the ITT ratio, so every
// player receives a finite score.
func (e *Engine) score(p *models.PlayerScore, in models.PlayerInput, leagueAvgITT float64) float64 {
	w := e.weights

	ittRatio := 1.0
	if in.TeamImpliedTotal != nil && leagueAvgITT > 0 {
		ittRatio = *in.TeamImpliedTotal / leagueAvgITT
	}

	return p.Projection*w.Projection +
		(p.Ceiling-p.Floor)*w.CeilingSpread -
		p.Ownership*w.Ownership +
		(p.Projection*ValueDensityScale/float64(p.Salary))*w.ValueDensity +
		deref(in.TrendPct)*w.Trend -
		deref(in.RegressionPenalty)*w.RegressionPenalty +
		ittRatio*w.ImpliedTeamTotal +
		deref(in.MatchupValue)*w.Matchup
}

// leagueAverageITT is the mean implied team total over players that carry
// one. Pools with no ITT data yield 0, which scores every ratio as neutral.
func leagueAverageITT(inputs []models.PlayerInput) float64 {
	var totals []float64
	for _, in := range inputs {
		if in.TeamImpliedTotal != nil {
			totals = append(totals, *in.TeamImpliedTotal)
		}
	}
	if len(totals) == 0 {
		return 0
	}
	return stat.Mean(totals, nil)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

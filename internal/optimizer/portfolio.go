package optimizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
	"github.com/jdwhitaker/dfs-portfolio/internal/roster"
)

// Baseline labels used for the baseline_unavailable markers.
const (
	LabelBestSmartScore = "best_smart_score"
	LabelBestProjection = "best_projection"
)

type state string

const (
	stateInit               state = "init"
	stateBaselineBestScore  state = "baseline_best_score"
	stateBaselineProjection state = "baseline_best_projection"
	stateGeneratePortfolio  state = "generate_portfolio"
	stateDone               state = "done"
	stateFailed             state = "failed"
)

// Result is the ordered outcome of one request: baselines first, then
// portfolio lineups 1..N or fewer on shortfall.
type Result struct {
	Lineups []models.Lineup `json:"lineups"`

	// Shortfall is how many requested portfolio lineups could not be
	// produced; TruncationReason explains a non-zero shortfall.
	Shortfall        int    `json:"shortfall"`
	TruncationReason string `json:"truncation_reason,omitempty"`

	// BaselinesUnavailable lists baseline labels whose solve was
	// infeasible. Absent baselines are marked, never silently omitted.
	BaselinesUnavailable []string `json:"baselines_unavailable,omitempty"`

	ElapsedMs int64 `json:"elapsed_ms"`
}

// PortfolioOptimizer runs the N+2 sequential solves for one request:
// two diversity-unconstrained baselines, then N portfolio solves with
// accumulating cuts. It is stateless between requests.
type PortfolioOptimizer struct {
	model    *roster.ConstraintModel
	settings models.OptimizationSettings
	blend    BlendParams
	logger   *logrus.Entry
}

func NewPortfolioOptimizer(model *roster.ConstraintModel, settings models.OptimizationSettings, blend BlendParams, logger *logrus.Entry) *PortfolioOptimizer {
	return &PortfolioOptimizer{
		model:    model,
		settings: settings,
		blend:    blend,
		logger:   logger,
	}
}

// Generate runs the request state machine to completion. Timeouts are fatal
// for the whole request; per-solve infeasibility degrades to markers and
// shortfall annotations instead.
func (o *PortfolioOptimizer) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}
	var cuts []Cut

	o.transition(stateInit, stateBaselineBestScore)
	baselineCuts, err := o.runBaseline(ctx, models.BaselineSmartScoreID, LabelBestSmartScore, SmartScoreObjective(), cuts, result)
	if err != nil {
		o.transition(stateBaselineBestScore, stateFailed)
		return nil, err
	}
	cuts = baselineCuts

	o.transition(stateBaselineBestScore, stateBaselineProjection)
	baselineCuts, err = o.runBaseline(ctx, models.BaselineProjectionID, LabelBestProjection, ProjectionObjective(), cuts, result)
	if err != nil {
		o.transition(stateBaselineProjection, stateFailed)
		return nil, err
	}
	cuts = baselineCuts

	o.transition(stateBaselineProjection, stateGeneratePortfolio)
	objective := BlendedObjective(o.settings.StrategyMode, o.blend)

	for i := 1; i <= o.settings.NumLineups; i++ {
		sol, err := newSolver(o.model, objective, cuts).solve(ctx)
		if err != nil {
			var infeasible *ObjectiveInfeasibleError
			if errors.As(err, &infeasible) {
				result.Shortfall = o.settings.NumLineups - (i - 1)
				result.TruncationReason = fmt.Sprintf("portfolio solve %d infeasible under accumulated diversity cuts", i)
				o.logger.WithFields(logrus.Fields{
					"produced":  i - 1,
					"requested": o.settings.NumLineups,
				}).Info("Portfolio truncated early")
				break
			}
			o.transition(stateGeneratePortfolio, stateFailed)
			return nil, fmt.Errorf("portfolio solve %d: %w", i, err)
		}

		lineup := assembleLineup(i, fmt.Sprintf("portfolio_%d", i), sol, o.model)
		result.Lineups = append(result.Lineups, lineup)
		// Each emitted portfolio lineup contributes an overlap cut, so
		// every later lineup shares at most MaxSharedPrev players with any
		// earlier one, not just its direct predecessor.
		cuts = append(cuts, Overlap(lineup.PlayerIDs(), o.settings.MaxSharedPrev))
	}

	o.transition(stateGeneratePortfolio, stateDone)
	result.ElapsedMs = time.Since(start).Milliseconds()
	return result, nil
}

// runBaseline performs one diversity-unconstrained baseline solve. An
// infeasible baseline marks itself unavailable; any other error is fatal.
// Emitted baselines contribute a no-good cut so portfolio solves cannot
// repeat them exactly.
func (o *PortfolioOptimizer) runBaseline(ctx context.Context, id int, label string, obj Objective, cuts []Cut, result *Result) ([]Cut, error) {
	sol, err := newSolver(o.model, obj, nil).solve(ctx)
	if err != nil {
		var infeasible *ObjectiveInfeasibleError
		if errors.As(err, &infeasible) {
			result.BaselinesUnavailable = append(result.BaselinesUnavailable, label)
			o.logger.WithField("baseline", label).Warn("Baseline solve infeasible")
			return cuts, nil
		}
		return nil, fmt.Errorf("baseline %s: %w", label, err)
	}

	lineup := assembleLineup(id, label, sol, o.model)
	result.Lineups = append(result.Lineups, lineup)
	return append(cuts, NoGood(lineup.PlayerIDs())), nil
}

func (o *PortfolioOptimizer) transition(from, to state) {
	o.logger.WithFields(logrus.Fields{
		"from": string(from),
		"to":   string(to),
	}).Debug("Optimizer state transition")
}

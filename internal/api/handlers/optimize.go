package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
	"github.com/jdwhitaker/dfs-portfolio/internal/optimizer"
	"github.com/jdwhitaker/dfs-portfolio/internal/roster"
	"github.com/jdwhitaker/dfs-portfolio/internal/scoring"
	"github.com/jdwhitaker/dfs-portfolio/pkg/cache"
	"github.com/jdwhitaker/dfs-portfolio/pkg/config"
	"github.com/jdwhitaker/dfs-portfolio/pkg/utils"
)

type OptimizeHandler struct {
	cache  *cache.Service
	config *config.Config
}

func NewOptimizeHandler(cacheService *cache.Service, cfg *config.Config) *OptimizeHandler {
	return &OptimizeHandler{
		cache:  cacheService,
		config: cfg,
	}
}

// OptimizeRequest is the full optimize payload: the scored-pool inputs plus
// per-request settings. Weights and blend are optional overrides.
type OptimizeRequest struct {
	SlateID  string                      `json:"slate_id" binding:"required"`
	Players  []models.PlayerInput        `json:"players" binding:"required,min=1"`
	Settings models.OptimizationSettings `json:"settings"`
	Weights  *scoring.FactorWeights      `json:"weights,omitempty"`
	Blend    *optimizer.BlendParams      `json:"blend,omitempty"`
}

// OptimizeResponse wraps the portfolio result with request metadata.
type OptimizeResponse struct {
	OptimizationID string                      `json:"optimization_id"`
	SlateID        string                      `json:"slate_id"`
	Settings       models.OptimizationSettings `json:"settings"`
	Result         *optimizer.Result           `json:"result"`
	Warnings       []models.DataQualityWarning `json:"warnings,omitempty"`
	Cached         bool                        `json:"cached"`
}

// Optimize generates the lineup portfolio for one slate.
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if err := req.Settings.Normalize(h.config.SalaryCapCents, h.config.MaxLineups); err != nil {
		utils.SendValidationError(c, "Invalid settings", err.Error())
		return
	}
	weights := scoring.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}
	blend := optimizer.DefaultBlendParams()
	if req.Blend != nil {
		blend = *req.Blend
	}

	optimizationID := uuid.New().String()
	logger := logrus.WithFields(logrus.Fields{
		"optimization_id": optimizationID,
		"slate_id":        req.SlateID,
		"contest_mode":    req.Settings.ContestMode,
		"num_lineups":     req.Settings.NumLineups,
	})

	cacheKey, err := cache.ResultKey(req.SlateID, gin.H{
		"settings": req.Settings,
		"weights":  weights,
		"blend":    blend,
	})
	if err == nil && h.cache != nil {
		var cached OptimizeResponse
		if h.cache.Get(c.Request.Context(), cacheKey, &cached) == nil {
			logger.Info("Returning memoized optimization result")
			cached.Cached = true
			utils.SendSuccess(c, cached)
			return
		}
	}

	engine, err := scoring.NewEngine(weights, logger)
	if err != nil {
		utils.SendValidationError(c, "Invalid weights", err.Error())
		return
	}
	pool, warnings, err := engine.ScorePool(req.Players)
	if err != nil {
		utils.SendValidationError(c, "Invalid player pool", err.Error())
		return
	}

	model, err := roster.NewConstraintModel(pool, req.Settings)
	if err != nil {
		var infeasible *roster.InfeasibleRosterError
		if errors.As(err, &infeasible) {
			logger.WithField("slot", infeasible.Slot).Warn("Roster statically infeasible")
			utils.SendUnprocessable(c, utils.NewAppError(utils.ErrCodeInfeasible,
				"Roster cannot be filled from the eligible pool", infeasible.Error()))
			return
		}
		utils.SendInternalError(c, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(),
		time.Duration(h.config.OptimizationTimeout)*time.Second)
	defer cancel()

	result, err := optimizer.NewPortfolioOptimizer(model, req.Settings, blend, logger).Generate(ctx)
	if err != nil {
		if errors.Is(err, optimizer.ErrOptimizationTimeout) {
			utils.SendTimeout(c, "Optimization exceeded its time budget; retry with fewer lineups or looser constraints")
			return
		}
		logger.WithError(err).Error("Optimization failed")
		utils.SendError(c, http.StatusInternalServerError,
			utils.NewAppError(utils.ErrCodeOptimization, "Optimization failed", err.Error()))
		return
	}

	resp := OptimizeResponse{
		OptimizationID: optimizationID,
		SlateID:        req.SlateID,
		Settings:       req.Settings,
		Result:         result,
		Warnings:       warnings,
	}

	if h.cache != nil && cacheKey != "" {
		if err := h.cache.SetWithRetry(context.Background(), cacheKey, resp, 3); err != nil {
			logger.WithError(err).Warn("Failed to cache optimization result")
		}
	}

	logger.WithFields(logrus.Fields{
		"lineups":    len(result.Lineups),
		"shortfall":  result.Shortfall,
		"elapsed_ms": result.ElapsedMs,
	}).Info("Optimization completed")
	utils.SendSuccess(c, resp)
}

// Validate runs scoring and the static feasibility pre-check without
// solving, and reports pool statistics.
func (h *OptimizeHandler) Validate(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Settings.Normalize(h.config.SalaryCapCents, h.config.MaxLineups); err != nil {
		utils.SendValidationError(c, "Invalid settings", err.Error())
		return
	}
	weights := scoring.DefaultWeights()
	if req.Weights != nil {
		weights = *req.Weights
	}

	engine, err := scoring.NewEngine(weights, nil)
	if err != nil {
		utils.SendValidationError(c, "Invalid weights", err.Error())
		return
	}
	pool, warnings, err := engine.ScorePool(req.Players)
	if err != nil {
		utils.SendValidationError(c, "Invalid player pool", err.Error())
		return
	}

	feasible := true
	var reason string
	model, err := roster.NewConstraintModel(pool, req.Settings)
	if err != nil {
		feasible = false
		reason = err.Error()
	}

	positionCounts := make(map[string]int)
	scores := make([]float64, 0, len(pool))
	for _, p := range pool {
		positionCounts[p.Position]++
		scores = append(scores, p.SmartScore)
	}

	resp := gin.H{
		"feasible":        feasible,
		"pool_size":       len(pool),
		"position_counts": positionCounts,
		"avg_smart_score": stat.Mean(scores, nil),
		"warnings":        warnings,
	}
	if !feasible {
		resp["reason"] = reason
	} else {
		resp["eligible_per_slot"] = eligiblePerSlot(model)
	}
	utils.SendSuccess(c, resp)
}

// Presets returns the named settings presets callers can start from.
func (h *OptimizeHandler) Presets(c *gin.Context) {
	presets := []gin.H{
		{
			"name":        "Balanced",
			"description": "Smart-score maximization with default diversity",
			"settings": models.OptimizationSettings{
				ContestMode:  models.ContestModeMain,
				StrategyMode: models.StrategyBalanced,
				NumLineups:   20,
			},
		},
		{
			"name":        "Tournament",
			"description": "Ceiling-leaning, ownership-penalized lineups with QB stacks",
			"settings": models.OptimizationSettings{
				ContestMode:      models.ContestModeMain,
				StrategyMode:     models.StrategyCeiling,
				NumLineups:       20,
				RequireQBStack:   true,
				RequireBringBack: true,
			},
		},
		{
			"name":        "Cash Game",
			"description": "Floor-leaning lineups for head-to-head and double-ups",
			"settings": models.OptimizationSettings{
				ContestMode:  models.ContestModeMain,
				StrategyMode: models.StrategyFloor,
				NumLineups:   3,
			},
		},
		{
			"name":        "Showdown",
			"description": "Single-game captain mode",
			"settings": models.OptimizationSettings{
				ContestMode:  models.ContestModeShowdown,
				StrategyMode: models.StrategyCeiling,
				NumLineups:   10,
			},
		},
	}
	utils.SendSuccess(c, presets)
}

func eligiblePerSlot(model *roster.ConstraintModel) map[string]int {
	out := make(map[string]int, len(model.Slots))
	for i, slot := range model.Slots {
		out[slot.Name] = len(model.Candidates[i])
	}
	return out
}

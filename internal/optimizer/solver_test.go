package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
	"github.com/jdwhitaker/dfs-portfolio/internal/roster"
)

func flatShowdownPool(salaries map[string]int) []models.PlayerScore {
	pool := make([]models.PlayerScore, 0, len(salaries))
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "z"} {
		salary, ok := salaries[id]
		if !ok {
			continue
		}
		team, opp := "KC", "BUF"
		if id == "b" || id == "d" || id == "f" {
			team, opp = "BUF", "KC"
		}
		pool = append(pool, models.PlayerScore{
			ID: id, Name: id, Team: team, Opponent: opp, Position: "WR",
			Salary: salary, SmartScore: 10, Projection: 10,
		})
	}
	return pool
}

func showdownModel(t *testing.T, pool []models.PlayerScore) *roster.ConstraintModel {
	t.Helper()
	settings := normalizedSettings(t, models.ContestModeShowdown, 1)
	model, err := roster.NewConstraintModel(pool, settings)
	require.NoError(t, err)
	return model
}

func TestSolve_TieBreaksPreferLowerSalaryThenSmallerIDSet(t *testing.T) {
	// Every player scores 10, so every 6-player choice ties on objective.
	// The winner must carry the cheap player as captain (lowest total
	// salary) and then the lexicographically smallest id set.
	pool := flatShowdownPool(map[string]int{
		"a": 400000, "b": 400000, "c": 400000,
		"d": 400000, "e": 400000, "f": 400000,
		"z": 300000,
	})
	model := showdownModel(t, pool)

	sol, err := newSolver(model, SmartScoreObjective(), nil).solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d", "e", "z"}, sol.sortedIDs)
	// Captain on z: 300000*1.5 + 5*400000.
	assert.Equal(t, 2450000, sol.salary)
	captainIdx := sol.picks[0]
	assert.Equal(t, "z", model.Players[captainIdx].ID)
}

func TestSolve_NoGoodCutForcesNewPlayerSet(t *testing.T) {
	pool := flatShowdownPool(map[string]int{
		"a": 400000, "b": 400000, "c": 400000,
		"d": 400000, "e": 400000, "f": 400000,
		"z": 300000,
	})
	model := showdownModel(t, pool)

	first, err := newSolver(model, SmartScoreObjective(), nil).solve(context.Background())
	require.NoError(t, err)

	second, err := newSolver(model, SmartScoreObjective(), []Cut{NoGood(first.sortedIDs)}).
		solve(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first.sortedIDs, second.sortedIDs)
	assert.LessOrEqual(t, second.objective, first.objective+objectiveEpsilon)
}

func TestSolve_OverlapCutBoundsSharedPlayers(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 1)
	model, err := roster.NewConstraintModel(twentyPlayerPool(), settings)
	require.NoError(t, err)

	first, err := newSolver(model, SmartScoreObjective(), nil).solve(context.Background())
	require.NoError(t, err)

	second, err := newSolver(model, SmartScoreObjective(), []Cut{Overlap(first.sortedIDs, 5)}).
		solve(context.Background())
	require.NoError(t, err)

	firstSet := make(map[string]bool)
	for _, id := range first.sortedIDs {
		firstSet[id] = true
	}
	shared := 0
	for _, id := range second.sortedIDs {
		if firstSet[id] {
			shared++
		}
	}
	assert.LessOrEqual(t, shared, 5)
}

func TestSolve_ExhaustedPoolIsObjectiveInfeasible(t *testing.T) {
	pool := flatShowdownPool(map[string]int{
		"a": 400000, "b": 400000, "c": 400000,
		"d": 400000, "e": 400000, "z": 300000,
	})
	model := showdownModel(t, pool)

	first, err := newSolver(model, SmartScoreObjective(), nil).solve(context.Background())
	require.NoError(t, err)

	// Six players, six slots: forbidding the only set leaves nothing.
	_, err = newSolver(model, SmartScoreObjective(), []Cut{NoGood(first.sortedIDs)}).
		solve(context.Background())
	require.Error(t, err)

	var infeasible *ObjectiveInfeasibleError
	assert.ErrorAs(t, err, &infeasible)
}

func TestSolve_SalaryCapRespected(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 1)
	model, err := roster.NewConstraintModel(twentyPlayerPool(), settings)
	require.NoError(t, err)

	sol, err := newSolver(model, SmartScoreObjective(), nil).solve(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.salary, settings.SalaryCapCents)

	// An unconstrained greedy pick of the most expensive eligible players
	// breaks the cap, so the bound above is doing work.
	expensive := 750000 + 820000 + 640000 + 850000 + 720000 + 600000 + 640000 + 560000 + 330000
	assert.Greater(t, expensive, settings.SalaryCapCents)
}

func TestSolve_CanceledContextStopsSearch(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 1)
	model, err := roster.NewConstraintModel(twentyPlayerPool(), settings)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = newSolver(model, SmartScoreObjective(), nil).solve(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
	"github.com/jdwhitaker/dfs-portfolio/internal/roster"
)

func TestAssembleLineup_MainTotals(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 1)
	model, err := roster.NewConstraintModel(twentyPlayerPool(), settings)
	require.NoError(t, err)

	sol, err := newSolver(model, SmartScoreObjective(), nil).solve(context.Background())
	require.NoError(t, err)

	lineup := assembleLineup(models.BaselineSmartScoreID, LabelBestSmartScore, sol, model)

	assert.Equal(t, models.BaselineSmartScoreID, lineup.ID)
	require.Len(t, lineup.Assignments, 9)

	var salary int
	var score, projection, ownership float64
	for i, a := range lineup.Assignments {
		assert.Equal(t, model.Slots[i].Name, a.Slot)
		assert.False(t, a.IsCaptain, "main mode has no captain")
		salary += a.Player.Salary
		score += a.Player.SmartScore
		projection += a.Player.Projection
		ownership += a.Player.Ownership
	}
	assert.Equal(t, salary, lineup.TotalSalary)
	assert.InDelta(t, score, lineup.TotalSmartScore, 1e-9)
	assert.InDelta(t, projection, lineup.ProjectedPoints, 1e-9)
	assert.InDelta(t, ownership/9, lineup.AvgOwnership, 1e-9)
}

func TestAssembleLineup_CaptainCountedOnceInOwnership(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeShowdown, 1)
	model, err := roster.NewConstraintModel(showdownPool(), settings)
	require.NoError(t, err)

	sol, err := newSolver(model, SmartScoreObjective(), nil).solve(context.Background())
	require.NoError(t, err)

	lineup := assembleLineup(1, "portfolio_1", sol, model)

	var ownership float64
	for _, a := range lineup.Assignments {
		ownership += a.Player.Ownership
	}
	// Unweighted mean: the captain's ownership is not multiplied.
	assert.InDelta(t, ownership/6, lineup.AvgOwnership, 1e-9)

	captain := lineup.Assignments[0]
	require.True(t, captain.IsCaptain)
	// Assignment keeps the unmultiplied player record; only totals carry
	// the 1.5x effect.
	var baseSalary int
	for _, a := range lineup.Assignments {
		baseSalary += a.Player.Salary
	}
	assert.Equal(t, baseSalary+captain.Player.Salary/2, lineup.TotalSalary)
}

package optimizer

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
	"github.com/jdwhitaker/dfs-portfolio/internal/roster"
)

func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return logrus.NewEntry(log)
}

func testPlayer(id, team, opp, pos string, salary int, smartScore, projection, ownership float64) models.PlayerScore {
	return models.PlayerScore{
		ID: id, Name: id, Team: team, Opponent: opp, Position: pos, Salary: salary,
		SmartScore: smartScore, Projection: projection,
		Ceiling: projection * 1.4, Floor: projection * 0.6, Ownership: ownership,
	}
}

// twentyPlayerPool is a feasible main-slate pool where the salary cap binds
// on the top-score lineup, so solves do real pruning work.
func twentyPlayerPool() []models.PlayerScore {
	return []models.PlayerScore{
		testPlayer("q1", "KC", "BUF", "QB", 750000, 90, 20.0, 0.22),
		testPlayer("q2", "PHI", "DAL", "QB", 680000, 82, 23.5, 0.15),
		testPlayer("q3", "SF", "MIA", "QB", 560000, 70, 17.0, 0.08),
		testPlayer("r1", "KC", "BUF", "RB", 820000, 95, 22.0, 0.30),
		testPlayer("r2", "DAL", "PHI", "RB", 640000, 80, 18.5, 0.20),
		testPlayer("r3", "SF", "MIA", "RB", 560000, 72, 16.0, 0.14),
		testPlayer("r4", "BUF", "KC", "RB", 480000, 60, 13.0, 0.10),
		testPlayer("r5", "MIA", "SF", "RB", 400000, 50, 11.0, 0.06),
		testPlayer("w1", "MIA", "SF", "WR", 850000, 97, 21.5, 0.28),
		testPlayer("w2", "PHI", "DAL", "WR", 720000, 85, 19.0, 0.19),
		testPlayer("w3", "KC", "BUF", "WR", 600000, 74, 16.5, 0.13),
		testPlayer("w4", "DAL", "PHI", "WR", 470000, 62, 14.0, 0.09),
		testPlayer("w5", "SF", "MIA", "WR", 390000, 52, 11.5, 0.05),
		testPlayer("w6", "BUF", "KC", "WR", 330000, 40, 9.0, 0.03),
		testPlayer("t1", "KC", "BUF", "TE", 640000, 70, 15.0, 0.17),
		testPlayer("t2", "SF", "MIA", "TE", 350000, 45, 8.5, 0.04),
		testPlayer("t3", "DAL", "PHI", "TE", 300000, 38, 7.0, 0.02),
		testPlayer("d1", "BUF", "KC", "DST", 330000, 35, 8.0, 0.12),
		testPlayer("d2", "DAL", "PHI", "DST", 260000, 28, 6.5, 0.07),
		testPlayer("d3", "MIA", "SF", "DST", 210000, 22, 5.0, 0.03),
	}
}

// showdownPool is a 12-player single-game pool, both sides represented.
func showdownPool() []models.PlayerScore {
	return []models.PlayerScore{
		testPlayer("sq1", "KC", "BUF", "QB", 1150000, 92, 22.0, 0.35),
		testPlayer("sq2", "BUF", "KC", "QB", 1080000, 88, 21.0, 0.30),
		testPlayer("sr1", "KC", "BUF", "RB", 900000, 75, 17.0, 0.25),
		testPlayer("sr2", "BUF", "KC", "RB", 700000, 62, 14.0, 0.18),
		testPlayer("sw1", "KC", "BUF", "WR", 980000, 80, 18.0, 0.28),
		testPlayer("sw2", "BUF", "KC", "WR", 840000, 70, 16.0, 0.20),
		testPlayer("sw3", "KC", "BUF", "WR", 560000, 48, 10.0, 0.10),
		testPlayer("sw4", "BUF", "KC", "WR", 420000, 36, 8.0, 0.06),
		testPlayer("st1", "KC", "BUF", "TE", 520000, 44, 9.5, 0.09),
		testPlayer("st2", "BUF", "KC", "TE", 380000, 30, 6.5, 0.04),
		testPlayer("sd1", "KC", "BUF", "DST", 300000, 24, 5.5, 0.08),
		testPlayer("sd2", "BUF", "KC", "DST", 260000, 20, 4.5, 0.05),
	}
}

func normalizedSettings(t *testing.T, mode models.ContestMode, numLineups int) models.OptimizationSettings {
	t.Helper()
	s := models.OptimizationSettings{ContestMode: mode, NumLineups: numLineups}
	require.NoError(t, s.Normalize(5000000, 150))
	return s
}

func generate(t *testing.T, pool []models.PlayerScore, settings models.OptimizationSettings) *Result {
	t.Helper()
	model, err := roster.NewConstraintModel(pool, settings)
	require.NoError(t, err)

	result, err := NewPortfolioOptimizer(model, settings, DefaultBlendParams(), testLogger()).
		Generate(context.Background())
	require.NoError(t, err)
	return result
}

func TestGenerate_MainScenario(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 3)
	result := generate(t, twentyPlayerPool(), settings)

	require.GreaterOrEqual(t, len(result.Lineups), 2)
	assert.Empty(t, result.BaselinesUnavailable)

	// Baselines come first with the reserved sentinel ids.
	assert.Equal(t, models.BaselineSmartScoreID, result.Lineups[0].ID)
	assert.Equal(t, LabelBestSmartScore, result.Lineups[0].Label)
	assert.Equal(t, models.BaselineProjectionID, result.Lineups[1].ID)
	assert.Equal(t, LabelBestProjection, result.Lineups[1].Label)

	portfolio := result.Lineups[2:]
	assert.LessOrEqual(t, len(portfolio), 3)
	assert.Equal(t, 3-len(portfolio), result.Shortfall)

	for _, lineup := range result.Lineups {
		assert.LessOrEqual(t, lineup.TotalSalary, settings.SalaryCapCents,
			"lineup %d exceeds the cap", lineup.ID)
		assert.Len(t, lineup.Assignments, 9)

		seen := make(map[string]bool)
		for _, a := range lineup.Assignments {
			assert.False(t, seen[a.Player.ID], "player %s duplicated in lineup %d", a.Player.ID, lineup.ID)
			seen[a.Player.ID] = true
		}
	}
	for i, lineup := range portfolio {
		assert.Equal(t, i+1, lineup.ID)
	}
}

func TestGenerate_BaselinesOutscorePortfolio(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 3)
	result := generate(t, twentyPlayerPool(), settings)

	best := result.Lineups[0]
	for _, lineup := range result.Lineups[2:] {
		assert.LessOrEqual(t, lineup.TotalSmartScore, best.TotalSmartScore+1e-9,
			"diversity-unconstrained baseline must dominate on smart score")
	}

	bestProj := result.Lineups[1]
	for _, lineup := range result.Lineups[2:] {
		assert.LessOrEqual(t, lineup.ProjectedPoints, bestProj.ProjectedPoints+1e-9)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 4)

	first := generate(t, twentyPlayerPool(), settings)
	second := generate(t, twentyPlayerPool(), settings)

	assert.Equal(t, first.Lineups, second.Lineups,
		"identical pool and settings must produce identical ordered lineups")
	assert.Equal(t, first.Shortfall, second.Shortfall)
}

func TestGenerate_PortfolioDiversityBound(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 4)
	result := generate(t, twentyPlayerPool(), settings)

	portfolio := result.Lineups[2:]
	for i := range portfolio {
		for j := i + 1; j < len(portfolio); j++ {
			shared := portfolio[i].SharedWith(&portfolio[j])
			assert.LessOrEqual(t, shared, settings.MaxSharedPrev,
				"portfolio lineups %d and %d overlap too much", portfolio[i].ID, portfolio[j].ID)
		}
	}
}

func TestGenerate_ShowdownCaptainMultiplier(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeShowdown, 5)
	result := generate(t, showdownPool(), settings)

	require.GreaterOrEqual(t, len(result.Lineups), 2)
	for _, lineup := range result.Lineups {
		require.Len(t, lineup.Assignments, 6)
		require.True(t, lineup.Assignments[0].IsCaptain)

		var captain models.PlayerScore
		var baseSalary int
		var baseScore, baseProjection float64
		for i, a := range lineup.Assignments {
			if i == 0 {
				captain = a.Player
			} else {
				assert.False(t, a.IsCaptain)
			}
			baseSalary += a.Player.Salary
			baseScore += a.Player.SmartScore
			baseProjection += a.Player.Projection
		}

		// Captain salary, score, and projection count at 1.5x exactly once.
		assert.Equal(t, baseSalary+captain.Salary/2, lineup.TotalSalary)
		assert.InDelta(t, baseScore+captain.SmartScore*0.5, lineup.TotalSmartScore, 1e-9)
		assert.InDelta(t, baseProjection+captain.Projection*0.5, lineup.ProjectedPoints, 1e-9)
		assert.LessOrEqual(t, lineup.TotalSalary, settings.SalaryCapCents)

		// DraftKings showdown rosters must draw from both teams.
		for _, count := range lineup.GetTeamExposure() {
			assert.LessOrEqual(t, count, 5)
		}
	}
}

func TestGenerate_ShortfallInsteadOfError(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 10)
	settings.SelectedPlayerIDs = []string{"q3", "r4", "r5", "w3", "w4", "w5", "w6", "t2", "t3", "d3"}

	result := generate(t, twentyPlayerPool(), settings)

	// Ten allowed players admit six player sets, every pair sharing eight
	// players. The baselines' no-good cuts still leave a first portfolio
	// lineup, but the overlap bound of seven kills the second: truncation
	// with a shortfall annotation, not an error.
	require.Len(t, result.Lineups, 3)
	assert.Equal(t, 1, result.Lineups[2].ID)
	assert.Equal(t, 9, result.Shortfall)
	assert.NotEmpty(t, result.TruncationReason)

	// The portfolio lineup must swap in at least one player the best-score
	// baseline omits.
	baseline := result.Lineups[0]
	swapped := false
	for _, id := range result.Lineups[2].PlayerIDs() {
		if !baseline.HasPlayer(id) {
			swapped = true
		}
	}
	assert.True(t, swapped)
}

func TestGenerate_BaselineInfeasibleMarkers(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 2)
	// Below the cheapest full roster: the static pre-check still passes
	// (it ignores salary), so every solve comes up empty.
	settings.SalaryCapCents = 1000000

	result := generate(t, twentyPlayerPool(), settings)

	// Absent baselines are marked, never silently omitted.
	assert.Empty(t, result.Lineups)
	assert.Equal(t, []string{LabelBestSmartScore, LabelBestProjection}, result.BaselinesUnavailable)
	assert.Equal(t, 2, result.Shortfall)
	assert.NotEmpty(t, result.TruncationReason)
}

func TestGenerate_StackingConstraints(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 3)
	settings.RequireQBStack = true
	settings.RequireBringBack = true

	result := generate(t, twentyPlayerPool(), settings)

	for _, lineup := range result.Lineups {
		var qb models.PlayerScore
		for _, a := range lineup.Assignments {
			if a.Player.Position == "QB" {
				qb = a.Player
			}
		}
		require.NotEmpty(t, qb.ID)

		stacked, broughtBack := false, false
		for _, a := range lineup.Assignments {
			if a.Player.Team == qb.Team && (a.Player.Position == "WR" || a.Player.Position == "TE") {
				stacked = true
			}
			if a.Player.Team == qb.Opponent {
				broughtBack = true
			}
		}
		assert.True(t, stacked, "lineup %d missing QB stack", lineup.ID)
		assert.True(t, broughtBack, "lineup %d missing bring-back", lineup.ID)
	}
}

func TestGenerate_TimeoutIsFatal(t *testing.T) {
	settings := normalizedSettings(t, models.ContestModeMain, 3)
	model, err := roster.NewConstraintModel(twentyPlayerPool(), settings)
	require.NoError(t, err)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err = NewPortfolioOptimizer(model, settings, DefaultBlendParams(), testLogger()).Generate(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOptimizationTimeout)
}

package optimizer

import (
	"github.com/jdwhitaker/dfs-portfolio/internal/models"
	"github.com/jdwhitaker/dfs-portfolio/internal/roster"
)

// assembleLineup packages one solver solution into the Lineup result type.
// The 1.5x captain multiplier is applied exactly once, here, to the
// captain's salary, smart score, and projection before totals; average
// ownership is the unweighted mean with the captain counted once.
func assembleLineup(id int, label string, sol *solution, model *roster.ConstraintModel) models.Lineup {
	lineup := models.Lineup{
		ID:          id,
		Label:       label,
		Assignments: make([]models.Assignment, len(model.Slots)),
	}

	var ownershipSum float64
	for i, slot := range model.Slots {
		player := model.Players[sol.picks[i]]
		lineup.Assignments[i] = models.Assignment{
			Slot:      slot.Name,
			IsCaptain: slot.IsCaptain,
			Player:    player,
		}

		salary := player.Salary
		score := player.SmartScore
		projection := player.Projection
		if slot.IsCaptain {
			salary = captainSalary(salary)
			score *= 1.5
			projection *= 1.5
		}

		lineup.TotalSalary += salary
		lineup.TotalSmartScore += score
		lineup.ProjectedPoints += projection
		ownershipSum += player.Ownership
	}

	if len(model.Slots) > 0 {
		lineup.AvgOwnership = ownershipSum / float64(len(model.Slots))
	}
	return lineup
}

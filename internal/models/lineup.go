package models

import "fmt"

// Sentinel lineup ids for the two baselines. Portfolio lineups are 1..N.
const (
	BaselineSmartScoreID = -1
	BaselineProjectionID = -2
)

// Assignment binds one player to one roster slot. Captain effects
// (1.5x salary, score, projection) are already folded into the lineup
// totals by the assembler; Player keeps its unmultiplied values.
type Assignment struct {
	Slot      string      `json:"slot"`
	IsCaptain bool        `json:"is_captain"`
	Player    PlayerScore `json:"player"`
}

type Lineup struct {
	ID    int    `json:"id"`
	Label string `json:"label"`

	Assignments []Assignment `json:"assignments"`

	TotalSalary     int     `json:"total_salary"` // cents, captain-adjusted
	TotalSmartScore float64 `json:"total_smart_score"`
	ProjectedPoints float64 `json:"projected_points"`
	AvgOwnership    float64 `json:"avg_ownership"`
}

// PlayerIDs returns the lineup's player ids in slot order.
func (l *Lineup) PlayerIDs() []string {
	ids := make([]string, len(l.Assignments))
	for i, a := range l.Assignments {
		ids[i] = a.Player.ID
	}
	return ids
}

// HasPlayer reports whether the player already fills a slot.
func (l *Lineup) HasPlayer(playerID string) bool {
	for _, a := range l.Assignments {
		if a.Player.ID == playerID {
			return true
		}
	}
	return false
}

// SharedWith counts players this lineup has in common with other.
func (l *Lineup) SharedWith(other *Lineup) int {
	seen := make(map[string]bool, len(other.Assignments))
	for _, a := range other.Assignments {
		seen[a.Player.ID] = true
	}
	shared := 0
	for _, a := range l.Assignments {
		if seen[a.Player.ID] {
			shared++
		}
	}
	return shared
}

// GetTeamExposure returns a map of team abbreviations to player count.
func (l *Lineup) GetTeamExposure() map[string]int {
	exposure := make(map[string]int)
	for _, a := range l.Assignments {
		exposure[a.Player.Team]++
	}
	return exposure
}

// GetGameExposure returns a map of game keys to player count.
func (l *Lineup) GetGameExposure() map[string]int {
	exposure := make(map[string]int)
	for _, a := range l.Assignments {
		exposure[a.Player.GameKey()]++
	}
	return exposure
}

// ValidateSalaryCap checks the captain-adjusted total against the cap.
func (l *Lineup) ValidateSalaryCap(salaryCapCents int) error {
	if l.TotalSalary > salaryCapCents {
		return fmt.Errorf("lineup exceeds salary cap: %d > %d", l.TotalSalary, salaryCapCents)
	}
	return nil
}

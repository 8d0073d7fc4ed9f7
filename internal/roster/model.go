package roster

import (
	"fmt"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
)

// InfeasibleRosterError reports a slot that cannot be filled by the
// eligible pool. It is raised by model construction, before any solve.
type InfeasibleRosterError struct {
	Slot     string
	Eligible int
}

func (e *InfeasibleRosterError) Error() string {
	return fmt.Sprintf("roster infeasible: slot %s cannot be filled (%d eligible players after distinct assignment)", e.Slot, e.Eligible)
}

// ConstraintModel is the declarative feasible-region description for one
// optimize request: slot topology, eligible pool, salary cap, exposure caps,
// and stacking toggles. It is immutable once built.
type ConstraintModel struct {
	Mode  models.ContestMode
	Slots []Slot

	SalaryCapCents int
	MaxPerTeam     int
	MaxPerGame     int

	RequireQBStack   bool
	RequireBringBack bool

	// Players is the filtered eligible pool in input order.
	Players []models.PlayerScore

	// Candidates[i] holds indexes into Players eligible for Slots[i].
	Candidates [][]int
}

// NewConstraintModel filters the pool, builds per-slot candidate lists, and
// runs the static feasibility pre-check. It returns InfeasibleRosterError
// when some slot cannot be filled by distinct players.
func NewConstraintModel(pool []models.PlayerScore, settings models.OptimizationSettings) (*ConstraintModel, error) {
	slots := SlotsFor(settings.ContestMode)

	eligible := filterPool(pool, settings.SelectedPlayerIDs)

	m := &ConstraintModel{
		Mode:           settings.ContestMode,
		Slots:          slots,
		SalaryCapCents: settings.SalaryCapCents,
		MaxPerTeam:     settings.MaxPerTeam,
		MaxPerGame:     settings.MaxPerGame,
		Players:        eligible,
	}
	if settings.ContestMode == models.ContestModeMain {
		m.RequireQBStack = settings.RequireQBStack
		m.RequireBringBack = settings.RequireBringBack
	}

	m.Candidates = make([][]int, len(slots))
	for i, slot := range slots {
		for j, p := range eligible {
			if slot.Accepts(p.Position) {
				m.Candidates[i] = append(m.Candidates[i], j)
			}
		}
	}

	if err := m.checkFeasibility(); err != nil {
		return nil, err
	}
	return m, nil
}

func filterPool(pool []models.PlayerScore, selectedIDs []string) []models.PlayerScore {
	if len(selectedIDs) == 0 {
		out := make([]models.PlayerScore, len(pool))
		copy(out, pool)
		return out
	}
	allowed := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		allowed[id] = true
	}
	out := make([]models.PlayerScore, 0, len(selectedIDs))
	for _, p := range pool {
		if allowed[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// checkFeasibility finds a full distinct slot-to-player assignment,
// ignoring salary and exposure, via augmenting paths. The first slot with
// no augmenting path names the infeasibility.
func (m *ConstraintModel) checkFeasibility() error {
	matchedSlot := make([]int, len(m.Players)) // player index -> slot index + 1
	for i := range matchedSlot {
		matchedSlot[i] = -1
	}

	var augment func(slot int, visited []bool) bool
	augment = func(slot int, visited []bool) bool {
		for _, p := range m.Candidates[slot] {
			if visited[p] {
				continue
			}
			visited[p] = true
			if matchedSlot[p] == -1 || augment(matchedSlot[p], visited) {
				matchedSlot[p] = slot
				return true
			}
		}
		return false
	}

	for i, slot := range m.Slots {
		visited := make([]bool, len(m.Players))
		if !augment(i, visited) {
			return &InfeasibleRosterError{Slot: slot.Name, Eligible: len(m.Candidates[i])}
		}
	}
	return nil
}

// ValidateLineup checks an assembled lineup against every model constraint.
// Used by the validate endpoint and as a post-solve invariant in tests.
func (m *ConstraintModel) ValidateLineup(l *models.Lineup) error {
	if len(l.Assignments) != len(m.Slots) {
		return fmt.Errorf("lineup has %d assignments, roster needs %d", len(l.Assignments), len(m.Slots))
	}

	seen := make(map[string]bool, len(l.Assignments))
	for i, a := range l.Assignments {
		slot := m.Slots[i]
		if a.Slot != slot.Name {
			return fmt.Errorf("assignment %d fills slot %s, expected %s", i, a.Slot, slot.Name)
		}
		if !slot.Accepts(a.Player.Position) {
			return fmt.Errorf("player %s (%s) not eligible for slot %s", a.Player.ID, a.Player.Position, slot.Name)
		}
		if a.IsCaptain != slot.IsCaptain {
			return fmt.Errorf("slot %s captain flag mismatch", slot.Name)
		}
		if seen[a.Player.ID] {
			return fmt.Errorf("player %s appears twice", a.Player.ID)
		}
		seen[a.Player.ID] = true
	}

	if err := l.ValidateSalaryCap(m.SalaryCapCents); err != nil {
		return err
	}

	for team, count := range l.GetTeamExposure() {
		if count > m.MaxPerTeam {
			return fmt.Errorf("team %s has %d players, max %d", team, count, m.MaxPerTeam)
		}
	}
	for game, count := range l.GetGameExposure() {
		if count > m.MaxPerGame {
			return fmt.Errorf("game %s has %d players, max %d", game, count, m.MaxPerGame)
		}
	}

	if m.RequireQBStack || m.RequireBringBack {
		if err := m.validateStacking(l); err != nil {
			return err
		}
	}
	return nil
}

func (m *ConstraintModel) validateStacking(l *models.Lineup) error {
	var qb *models.PlayerScore
	for i := range l.Assignments {
		if l.Assignments[i].Player.Position == "QB" {
			qb = &l.Assignments[i].Player
			break
		}
	}
	if qb == nil {
		return fmt.Errorf("stacking rules require a QB in the lineup")
	}

	if m.RequireQBStack {
		stacked := false
		for _, a := range l.Assignments {
			if a.Player.Team == qb.Team && (a.Player.Position == "WR" || a.Player.Position == "TE") {
				stacked = true
				break
			}
		}
		if !stacked {
			return fmt.Errorf("no same-team pass catcher stacked with QB %s", qb.ID)
		}
	}

	if m.RequireBringBack {
		brought := false
		for _, a := range l.Assignments {
			if a.Player.Team == qb.Opponent {
				brought = true
				break
			}
		}
		if !brought {
			return fmt.Errorf("no bring-back player from %s", qb.Opponent)
		}
	}
	return nil
}

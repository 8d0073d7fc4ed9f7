package models

import "fmt"

type ContestMode string

const (
	ContestModeMain     ContestMode = "main"
	ContestModeShowdown ContestMode = "showdown"
)

type StrategyMode string

const (
	StrategyBalanced StrategyMode = "balanced"
	StrategyCeiling  StrategyMode = "ceiling"
	StrategyFloor    StrategyMode = "floor"
)

// OptimizationSettings is the caller-controlled half of an optimize request.
// Zero values mean "use the default for this contest mode"; Normalize fills
// them in.
type OptimizationSettings struct {
	ContestMode  ContestMode  `json:"contest_mode"`
	StrategyMode StrategyMode `json:"strategy_mode"`

	NumLineups     int `json:"num_lineups"`
	SalaryCapCents int `json:"salary_cap_cents"`
	MaxPerTeam     int `json:"max_per_team"`
	MaxPerGame     int `json:"max_per_game"`

	// MaxSharedPrev bounds how many players a portfolio lineup may share
	// with any portfolio lineup generated before it.
	MaxSharedPrev int `json:"max_shared_prev"`

	// Main-mode stacking toggles. Ignored in showdown.
	RequireQBStack   bool `json:"require_qb_stack"`
	RequireBringBack bool `json:"require_bring_back"`

	// SelectedPlayerIDs restricts the pool to an allow-list when non-empty.
	SelectedPlayerIDs []string `json:"selected_player_ids,omitempty"`
}

// RosterSize returns the slot count for the contest mode.
func (s *OptimizationSettings) RosterSize() int {
	if s.ContestMode == ContestModeShowdown {
		return 6
	}
	return 9
}

// Normalize fills defaulted fields in place and validates the rest.
// defaultCap and maxLineups come from server configuration.
func (s *OptimizationSettings) Normalize(defaultCap, maxLineups int) error {
	if s.ContestMode == "" {
		s.ContestMode = ContestModeMain
	}
	if s.ContestMode != ContestModeMain && s.ContestMode != ContestModeShowdown {
		return fmt.Errorf("unknown contest mode %q", s.ContestMode)
	}
	if s.StrategyMode == "" {
		s.StrategyMode = StrategyBalanced
	}
	switch s.StrategyMode {
	case StrategyBalanced, StrategyCeiling, StrategyFloor:
	default:
		return fmt.Errorf("unknown strategy mode %q", s.StrategyMode)
	}
	if s.NumLineups <= 0 {
		s.NumLineups = 20
	}
	if s.NumLineups > maxLineups {
		return fmt.Errorf("num_lineups %d exceeds maximum %d", s.NumLineups, maxLineups)
	}
	if s.SalaryCapCents <= 0 {
		s.SalaryCapCents = defaultCap
	}
	if s.MaxPerTeam <= 0 {
		if s.ContestMode == ContestModeShowdown {
			s.MaxPerTeam = 5 // DraftKings showdown requires both teams
		} else {
			s.MaxPerTeam = 8
		}
	}
	if s.MaxPerGame <= 0 {
		if s.ContestMode == ContestModeShowdown {
			s.MaxPerGame = 6
		} else {
			s.MaxPerGame = 8
		}
	}
	if s.MaxSharedPrev <= 0 {
		s.MaxSharedPrev = s.RosterSize() - 2
	}
	if s.MaxSharedPrev >= s.RosterSize() {
		return fmt.Errorf("max_shared_prev %d must be below roster size %d", s.MaxSharedPrev, s.RosterSize())
	}
	return nil
}

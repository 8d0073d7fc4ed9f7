package roster

import "github.com/jdwhitaker/dfs-portfolio/internal/models"

// Slot is one roster position to fill. An empty AllowedPositions list means
// any position is eligible (showdown slots).
type Slot struct {
	Name             string   `json:"name"`
	AllowedPositions []string `json:"allowed_positions,omitempty"`
	IsCaptain        bool     `json:"is_captain"`
}

// Accepts reports whether a player at the given position may fill the slot.
func (s Slot) Accepts(position string) bool {
	if len(s.AllowedPositions) == 0 {
		return true
	}
	for _, p := range s.AllowedPositions {
		if p == position {
			return true
		}
	}
	return false
}

// MainSlots is the 9-slot DraftKings NFL classic roster.
func MainSlots() []Slot {
	return []Slot{
		{Name: "QB", AllowedPositions: []string{"QB"}},
		{Name: "RB1", AllowedPositions: []string{"RB"}},
		{Name: "RB2", AllowedPositions: []string{"RB"}},
		{Name: "WR1", AllowedPositions: []string{"WR"}},
		{Name: "WR2", AllowedPositions: []string{"WR"}},
		{Name: "WR3", AllowedPositions: []string{"WR"}},
		{Name: "TE", AllowedPositions: []string{"TE"}},
		{Name: "FLEX", AllowedPositions: []string{"RB", "WR", "TE"}},
		{Name: "DST", AllowedPositions: []string{"DST"}},
	}
}

// ShowdownSlots is the 6-slot single-game roster: one captain plus five
// flex slots, every position eligible everywhere.
func ShowdownSlots() []Slot {
	return []Slot{
		{Name: "CPT", IsCaptain: true},
		{Name: "FLEX1"},
		{Name: "FLEX2"},
		{Name: "FLEX3"},
		{Name: "FLEX4"},
		{Name: "FLEX5"},
	}
}

// SlotsFor returns the slot table for a contest mode.
func SlotsFor(mode models.ContestMode) []Slot {
	if mode == models.ContestModeShowdown {
		return ShowdownSlots()
	}
	return MainSlots()
}

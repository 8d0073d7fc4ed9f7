package optimizer

import (
	"context"
	"sort"

	"github.com/jdwhitaker/dfs-portfolio/internal/models"
	"github.com/jdwhitaker/dfs-portfolio/internal/roster"
)

const (
	// objectiveEpsilon separates genuinely better objectives from float
	// noise; anything closer falls to the deterministic tie-breaks.
	objectiveEpsilon = 1e-9

	// deadlineCheckInterval is how many search nodes pass between context
	// deadline checks.
	deadlineCheckInterval = 1024
)

// solution is one feasible slot assignment. picks is indexed by model slot
// order; salary and objective are captain-adjusted totals.
type solution struct {
	picks     []int
	salary    int
	objective float64
	sortedIDs []string
}

type candidate struct {
	player int
	value  float64 // captain-adjusted objective value
	salary int     // captain-adjusted cents
}

// solver runs one deterministic branch-and-bound maximization over the
// constraint model's feasible region under the given objective and cuts.
// It never mutates the model or the player pool.
type solver struct {
	model *roster.ConstraintModel
	obj   Objective
	cuts  []Cut

	order           []int
	candidates      [][]candidate
	maxValueSuffix  []float64
	minSalarySuffix []int

	used      []bool
	teamCount map[string]int
	gameCount map[string]int
	cutShared []int
	picks     []int
	curSalary int
	curValue  float64
	nodes     int64
	best      *solution
}

// captainSalary is the 1.5x showdown multiplier in integer cents. DFS
// salaries are multiples of 100 cents, so the floor on an odd input never
// fires.
func captainSalary(cents int) int {
	return cents * 3 / 2
}

func newSolver(model *roster.ConstraintModel, obj Objective, cuts []Cut) *solver {
	s := &solver{
		model:     model,
		obj:       obj,
		cuts:      cuts,
		used:      make([]bool, len(model.Players)),
		teamCount: make(map[string]int),
		gameCount: make(map[string]int),
		cutShared: make([]int, len(cuts)),
		picks:     make([]int, len(model.Slots)),
	}
	for i := range s.picks {
		s.picks[i] = -1
	}

	// Per-slot candidates sorted best-first with deterministic tie order.
	s.candidates = make([][]candidate, len(model.Slots))
	for i, slot := range model.Slots {
		cands := make([]candidate, 0, len(model.Candidates[i]))
		for _, p := range model.Candidates[i] {
			player := &model.Players[p]
			c := candidate{player: p, value: obj.Value(player), salary: player.Salary}
			if slot.IsCaptain {
				c.value *= 1.5
				c.salary = captainSalary(player.Salary)
			}
			cands = append(cands, c)
		}
		sort.SliceStable(cands, func(a, b int) bool {
			ca, cb := cands[a], cands[b]
			if ca.value != cb.value {
				return ca.value > cb.value
			}
			if ca.salary != cb.salary {
				return ca.salary < cb.salary
			}
			return model.Players[ca.player].ID < model.Players[cb.player].ID
		})
		s.candidates[i] = cands
	}

	// Visit the most constrained slots first.
	s.order = make([]int, len(model.Slots))
	for i := range s.order {
		s.order[i] = i
	}
	sort.SliceStable(s.order, func(a, b int) bool {
		return len(s.candidates[s.order[a]]) < len(s.candidates[s.order[b]])
	})

	// Suffix bounds over the visit order. Max value per slot is a valid
	// upper bound and min salary per slot a valid lower bound even though
	// both ignore distinctness.
	n := len(s.order)
	s.maxValueSuffix = make([]float64, n+1)
	s.minSalarySuffix = make([]int, n+1)
	for d := n - 1; d >= 0; d-- {
		cands := s.candidates[s.order[d]]
		maxV := 0.0
		minS := 0
		if len(cands) > 0 {
			maxV = cands[0].value
			minS = cands[0].salary
			for _, c := range cands {
				if c.value > maxV {
					maxV = c.value
				}
				if c.salary < minS {
					minS = c.salary
				}
			}
		}
		s.maxValueSuffix[d] = s.maxValueSuffix[d+1] + maxV
		s.minSalarySuffix[d] = s.minSalarySuffix[d+1] + minS
	}

	return s
}

// solve returns the optimal feasible solution under the deterministic
// tie-break order, ObjectiveInfeasibleError when none exists, or
// ErrOptimizationTimeout when the context deadline passes mid-search.
func (s *solver) solve(ctx context.Context) (*solution, error) {
	if err := ctx.Err(); err != nil {
		if err == context.DeadlineExceeded {
			return nil, ErrOptimizationTimeout
		}
		return nil, err
	}
	if err := s.descend(ctx, 0); err != nil {
		return nil, err
	}
	if s.best == nil {
		return nil, &ObjectiveInfeasibleError{Objective: s.obj.Name}
	}
	return s.best, nil
}

func (s *solver) descend(ctx context.Context, depth int) error {
	if depth == len(s.order) {
		s.recordLeaf()
		return nil
	}

	slotIdx := s.order[depth]
	for _, c := range s.candidates[slotIdx] {
		s.nodes++
		if s.nodes%deadlineCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				if err == context.DeadlineExceeded {
					return ErrOptimizationTimeout
				}
				return err
			}
		}

		// Objective bound. Candidates are value-sorted, so once the bound
		// fails it fails for the rest of the slot.
		if s.best != nil &&
			s.curValue+c.value+s.maxValueSuffix[depth+1] < s.best.objective-objectiveEpsilon {
			break
		}

		if s.used[c.player] {
			continue
		}
		if s.curSalary+c.salary+s.minSalarySuffix[depth+1] > s.model.SalaryCapCents {
			continue
		}

		player := &s.model.Players[c.player]
		if s.teamCount[player.Team]+1 > s.model.MaxPerTeam {
			continue
		}
		gameKey := player.GameKey()
		if s.gameCount[gameKey]+1 > s.model.MaxPerGame {
			continue
		}

		blocked := false
		for k := range s.cuts {
			if s.cuts[k].Contains(player.ID) && s.cutShared[k]+1 > s.cuts[k].MaxShared {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		s.apply(slotIdx, c, player, gameKey)
		err := s.descend(ctx, depth+1)
		s.undo(slotIdx, c, player, gameKey)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *solver) apply(slotIdx int, c candidate, player *models.PlayerScore, gameKey string) {
	s.used[c.player] = true
	s.picks[slotIdx] = c.player
	s.curSalary += c.salary
	s.curValue += c.value
	s.teamCount[player.Team]++
	s.gameCount[gameKey]++
	for k := range s.cuts {
		if s.cuts[k].Contains(player.ID) {
			s.cutShared[k]++
		}
	}
}

func (s *solver) undo(slotIdx int, c candidate, player *models.PlayerScore, gameKey string) {
	s.used[c.player] = false
	s.picks[slotIdx] = -1
	s.curSalary -= c.salary
	s.curValue -= c.value
	s.teamCount[player.Team]--
	s.gameCount[gameKey]--
	for k := range s.cuts {
		if s.cuts[k].Contains(player.ID) {
			s.cutShared[k]--
		}
	}
}

func (s *solver) recordLeaf() {
	if !s.stackingSatisfied() {
		return
	}

	cand := &solution{
		picks:     append([]int(nil), s.picks...),
		salary:    s.curSalary,
		objective: s.curValue,
	}
	cand.sortedIDs = s.sortedIDs(cand.picks)

	if s.betterThanBest(cand) {
		s.best = cand
	}
}

// betterThanBest applies the deterministic preference order: higher
// objective beyond epsilon, then lower total salary, then the
// lexicographically smaller sorted player-id set.
func (s *solver) betterThanBest(cand *solution) bool {
	if s.best == nil {
		return true
	}
	diff := cand.objective - s.best.objective
	if diff > objectiveEpsilon {
		return true
	}
	if diff < -objectiveEpsilon {
		return false
	}
	if cand.salary != s.best.salary {
		return cand.salary < s.best.salary
	}
	for i := range cand.sortedIDs {
		if cand.sortedIDs[i] != s.best.sortedIDs[i] {
			return cand.sortedIDs[i] < s.best.sortedIDs[i]
		}
	}
	return false
}

func (s *solver) sortedIDs(picks []int) []string {
	ids := make([]string, 0, len(picks))
	for _, p := range picks {
		ids = append(ids, s.model.Players[p].ID)
	}
	sort.Strings(ids)
	return ids
}

// stackingSatisfied checks the QB stack and bring-back rules on a complete
// assignment. Both are leaf checks; they only apply in main mode.
func (s *solver) stackingSatisfied() bool {
	if !s.model.RequireQBStack && !s.model.RequireBringBack {
		return true
	}

	var qb *models.PlayerScore
	for _, p := range s.picks {
		if s.model.Players[p].Position == "QB" {
			qb = &s.model.Players[p]
			break
		}
	}
	if qb == nil {
		return false
	}

	if s.model.RequireQBStack {
		stacked := false
		for _, p := range s.picks {
			pl := &s.model.Players[p]
			if pl.Team == qb.Team && (pl.Position == "WR" || pl.Position == "TE") {
				stacked = true
				break
			}
		}
		if !stacked {
			return false
		}
	}

	if s.model.RequireBringBack {
		brought := false
		for _, p := range s.picks {
			if s.model.Players[p].Team == qb.Opponent {
				brought = true
				break
			}
		}
		if !brought {
			return false
		}
	}
	return true
}

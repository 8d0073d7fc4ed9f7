package optimizer

import (
	"errors"
	"fmt"
)

// ObjectiveInfeasibleError means one specific solve found no feasible
// assignment under the cuts and constraints accumulated so far. Portfolio
// generation truncates on it; baseline solves mark the baseline unavailable.
type ObjectiveInfeasibleError struct {
	Objective string
}

func (e *ObjectiveInfeasibleError) Error() string {
	return fmt.Sprintf("no feasible lineup for objective %s", e.Objective)
}

// ErrOptimizationTimeout means a solve exceeded the request time budget.
// Fatal for the request; callers should retry with relaxed settings rather
// than identical input.
var ErrOptimizationTimeout = errors.New("optimization timed out")

package optimizer

// Cut bounds how many members of a fixed player set a solution may use.
// Both diversity constraint forms reduce to this shape: a no-good cut
// forbidding an exact emitted lineup allows all but one of its players, and
// an overlap cut against the preceding lineup allows at most MaxShared.
//
// Cuts accumulate across the sequential solves of one request; each solve
// receives the full set built so far.
type Cut struct {
	Players   map[string]struct{}
	MaxShared int
}

// NoGood forbids re-emitting the exact player set.
func NoGood(playerIDs []string) Cut {
	return Cut{Players: idSet(playerIDs), MaxShared: len(playerIDs) - 1}
}

// Overlap caps how many of the given players the next solution may reuse.
func Overlap(playerIDs []string, maxShared int) Cut {
	return Cut{Players: idSet(playerIDs), MaxShared: maxShared}
}

func (c Cut) Contains(playerID string) bool {
	_, ok := c.Players[playerID]
	return ok
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

package solver

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Assumption handling. Each assumption is forced at its own decision level
// before any free decision is made, and re-established after every backjump.
// When an assumption turns out to be falsified by the formula together with
// the previous assumptions, the subset of assumptions responsible is derived
// from the implication graph, and nothing is added to the clause database.

// analyzeFinal computes a subset of the current assumptions that is
// sufficient, together with the formula, to derive a conflict. failed is the
// assumption found false by propagation of the assumptions before it.
func (s *Solver) analyzeFinal(failed Lit) []Lit {
	fails := mapset.NewThreadUnsafeSet[Lit]()
	fails.Add(failed)
	if s.decisionLevel() == 0 {
		return fails.ToSlice()
	}
	s.seen[failed.Var()] = true
	for i := len(s.trail) - 1; i >= s.levels[0]; i-- {
		v := s.trail[i].Var()
		if !s.seen[v] {
			continue
		}
		if r := s.reason[v]; r == nil {
			// A decision below the free-search levels is an assumption.
			fails.Add(s.trail[i])
		} else {
			for k := 0; k < r.Len(); k++ {
				if lv := r.Get(k).Var(); s.varLevel[lv] > 0 {
					s.seen[lv] = true
				}
			}
		}
		s.seen[v] = false
	}
	s.seen[failed.Var()] = false
	subset := fails.ToSlice()
	sort.Slice(subset, func(i, j int) bool { return subset[i] < subset[j] })
	return subset
}

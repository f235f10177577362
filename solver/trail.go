package solver

import "fmt"

// The assignment trail: the chronological stack of literals assigned true,
// partitioned into decision levels by the levels slice of trail offsets.
// trail[qhead:] is the queue of literals waiting to be propagated.

// decisionLevel returns the current decision level.
// 0 means no decision was made yet (ground level).
func (s *Solver) decisionLevel() int {
	return len(s.levels)
}

// newDecisionLevel opens a new decision level at the current trail position.
func (s *Solver) newDecisionLevel() {
	s.levels = append(s.levels, len(s.trail))
}

// litValue returns whether the literal is made true or false by the current
// assignment, or lUndef if its variable is unbound.
func (s *Solver) litValue(l Lit) lbool {
	v := s.assigns[l.Var()]
	if v == lUndef || l.IsPositive() {
		return v
	}
	return -v
}

// uncheckedEnqueue pushes l on the trail as true, recording the clause that
// forced it (nil for decisions and assumptions). The variable must be unbound:
// callers guarantee it, and a violation means propagation is unsound.
func (s *Solver) uncheckedEnqueue(l Lit, from *Clause) {
	v := l.Var()
	if s.assigns[v] != lUndef {
		panic(fmt.Sprintf("solver: enqueueing literal %d whose variable is already %s", l.Int(), s.assigns[v]))
	}
	if l.IsPositive() {
		s.assigns[v] = lTrue
	} else {
		s.assigns[v] = lFalse
	}
	s.varLevel[v] = int32(s.decisionLevel())
	s.reason[v] = from
	if from != nil {
		from.lock()
	}
	s.trail = append(s.trail, l)
}

// enqueue pushes l if it is unbound. It returns false iff l is already false,
// i.e enqueueing it would contradict the current assignment.
func (s *Solver) enqueue(l Lit, from *Clause) bool {
	switch s.litValue(l) {
	case lTrue:
		return true
	case lFalse:
		return false
	default:
		s.uncheckedEnqueue(l, from)
		return true
	}
}

// backtrackTo undoes all assignments made at levels strictly greater than
// level, in reverse trail order. Unassigned variables are given back to the
// decision heuristic, and their last polarity is saved for phase saving.
func (s *Solver) backtrackTo(level int) {
	if s.decisionLevel() <= level {
		return
	}
	bound := s.levels[level]
	for i := len(s.trail) - 1; i >= bound; i-- {
		lit := s.trail[i]
		v := lit.Var()
		s.assigns[v] = lUndef
		if r := s.reason[v]; r != nil {
			r.unlock()
			s.reason[v] = nil
		}
		if s.opts.PhaseSaving {
			s.polarity[v] = lit.IsPositive()
		}
		s.order.insert(v)
	}
	s.qhead = bound
	s.trail = s.trail[:bound]
	s.levels = s.levels[:level]
}

package solver

import (
	"sort"

	"github.com/pkg/errors"
)

// The clause database. Clauses are referenced by stable *Clause pointers;
// removing a clause compacts the slices holding them but never invalidates
// references held elsewhere (watch lists, antecedents).

// AddClause adds a clause to the formula. It can be called between Solve
// calls: learned clauses and heuristic state accumulated so far are kept.
//
// The clause is simplified on insertion: duplicate literals are removed,
// tautologies are dropped, and literals already false at the ground level are
// stripped. If simplification yields the empty clause, the formula as a whole
// becomes unsatisfiable; this is not an error, subsequent Solve calls simply
// return Unsat.
func (s *Solver) AddClause(lits []Lit) error {
	if s.interrupted {
		return ErrInterrupted
	}
	for _, l := range lits {
		if err := s.validLit(l); err != nil {
			return err
		}
	}
	s.backtrackTo(0)
	s.status = Indet

	if !s.ok {
		// Already unsat at the root: the clause cannot change that.
		return nil
	}

	simplified := make([]Lit, len(lits))
	copy(simplified, lits)
	sort.Slice(simplified, func(i, j int) bool { return simplified[i] < simplified[j] })
	j := 0
	for _, l := range simplified {
		if j > 0 && l == simplified[j-1] {
			continue // Duplicate literal.
		}
		if j > 0 && l == simplified[j-1].Negation() {
			return nil // Tautology: the clause is always true.
		}
		switch s.litValue(l) {
		case lTrue:
			return nil // Already satisfied at the ground level.
		case lFalse:
			continue // Can never help.
		}
		simplified[j] = l
		j++
	}
	simplified = simplified[:j]

	switch len(simplified) {
	case 0:
		s.setUnsat()
	case 1:
		if !s.enqueue(simplified[0], nil) {
			s.setUnsat()
			return nil
		}
		if confl := s.propagate(); confl != nil {
			s.setUnsat()
		}
	default:
		c := NewClause(simplified)
		s.clauses = append(s.clauses, c)
		s.watchClause(c)
	}
	return nil
}

// AddIntClause is like AddClause but takes DIMACS-style literals:
// non-zero signed integers whose magnitude is a 1-based variable identifier.
func (s *Solver) AddIntClause(lits []int) error {
	converted := make([]Lit, len(lits))
	for i, l := range lits {
		if l == 0 {
			return errors.Wrap(ErrLitOutOfRange, "literal 0 is not allowed")
		}
		converted[i] = IntToLit(l)
	}
	return s.AddClause(converted)
}

// setUnsat marks the formula as unsatisfiable regardless of assumptions.
func (s *Solver) setUnsat() {
	s.ok = false
	s.status = Unsat
}

// addLearned inserts a clause produced by conflict analysis.
func (s *Solver) addLearned(c *Clause) {
	s.learned = append(s.learned, c)
	s.watchClause(c)
	s.clauseBumpActivity(c)
	s.stats.Learned++
	if c.Len() == 2 {
		s.stats.BinaryLearned++
	}
}

// removeLearned detaches c from the watch lists. The caller is responsible
// for dropping it from the learned slice; c must not be locked.
func (s *Solver) removeLearned(c *Clause) {
	s.unwatchClause(c)
	s.stats.Deleted++
}

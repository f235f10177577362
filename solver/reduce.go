package solver

import "sort"

// Deletion policy for learned clauses. When the learned database outgrows a
// slowly increasing budget, the weaker half is discarded. Clauses currently
// acting as an antecedent, binary clauses and glue clauses (LBD <= 2) are
// always kept.

const (
	initNbMaxLearned  = 2000 // Learned clause budget at first.
	incrNbMaxLearned  = 300  // Budget growth after each reduction cycle.
	incrPostponeNbMax = 1000 // Extra growth when most learned clauses are good.
)

// mustReduce tells whether the learned database outgrew its current budget.
func (s *Solver) mustReduce() bool {
	return s.stats.Conflicts >= int64(s.idxReduce)*int64(s.nbMaxLearned)
}

// reduceLearned discards about half of the learned clauses, keeping the ones
// most likely to be useful: low LBD first, high activity to break ties.
func (s *Solver) reduceLearned() {
	s.idxReduce = int(s.stats.Conflicts)/s.nbMaxLearned + 1
	sort.Slice(s.learned, func(i, j int) bool {
		ci, cj := s.learned[i], s.learned[j]
		if ci.lbd() != cj.lbd() {
			return ci.lbd() > cj.lbd()
		}
		return ci.activity < cj.activity
	})
	limit := len(s.learned) / 2
	if limit < len(s.learned) && s.learned[limit].lbd() <= 3 {
		// Lots of good clauses: postpone the next reduction.
		s.nbMaxLearned += incrPostponeNbMax
	}
	j := 0
	for i, c := range s.learned {
		if i < limit && c.Len() > 2 && c.lbd() > 2 && !c.isLocked() {
			s.removeLearned(c)
			continue
		}
		s.learned[j] = c
		j++
	}
	removed := len(s.learned) - j
	s.learned = s.learned[:j]
	s.nbMaxLearned += incrNbMaxLearned
	if s.logger != nil {
		s.logger.WithField("removed", removed).
			WithField("kept", j).
			WithField("budget", s.nbMaxLearned).
			Debug("reduced learned clause database")
	}
}

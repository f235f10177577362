package solver

// Conflict analysis: derive a 1UIP asserting clause from a conflicting clause
// by resolving along the implication graph, which is read off the trail and
// the per-variable antecedents rather than materialized.

// analyze walks the implication graph backwards from the conflicting clause
// and returns the learned clause's literals, the level to backjump to and the
// clause's LBD. The asserting literal is placed first, a literal from the
// backjump level second, so that watching the first two literals makes the
// clause unit right after the backjump.
// Side effect: bumps the activity of every variable met during the walk.
func (s *Solver) analyze(confl *Clause) (learned []Lit, btLevel, lbd int) {
	learned = append(s.learnedBuf[:0], LitUndef) // Slot 0 is for the asserting literal.
	p := LitUndef
	nbLvl := 0 // Nb of unresolved literals from the conflict level.
	idx := len(s.trail) - 1

	for {
		if confl == nil {
			panic("solver: reached a decision before the first UIP")
		}
		s.clauseBumpActivity(confl)
		start := 0
		if p != LitUndef {
			start = 1 // confl is now an antecedent: its first literal is the resolved one.
		}
		for i := start; i < confl.Len(); i++ {
			q := confl.Get(i)
			v := q.Var()
			if s.seen[v] || s.varLevel[v] == 0 {
				continue
			}
			s.varBumpActivity(v)
			s.seen[v] = true
			if int(s.varLevel[v]) == s.decisionLevel() {
				nbLvl++
			} else {
				learned = append(learned, q)
			}
		}
		// Resolve away the most recently assigned marked literal.
		for !s.seen[s.trail[idx].Var()] {
			idx--
		}
		p = s.trail[idx]
		idx--
		confl = s.reason[p.Var()]
		s.seen[p.Var()] = false
		nbLvl--
		if nbLvl <= 0 {
			break
		}
	}
	learned[0] = p.Negation()

	s.toClear = append(s.toClear[:0], learned...)
	learned = s.minimizeLearned(learned)
	s.learnedBuf = learned

	if len(learned) == 1 {
		btLevel = 0
	} else {
		// Backjump to the second-highest level in the clause, keeping one of
		// its literals in the second watched slot.
		maxIdx := 1
		for i := 2; i < len(learned); i++ {
			if s.varLevel[learned[i].Var()] > s.varLevel[learned[maxIdx].Var()] {
				maxIdx = i
			}
		}
		learned[1], learned[maxIdx] = learned[maxIdx], learned[1]
		btLevel = int(s.varLevel[learned[1].Var()])
	}
	lbd = s.computeLbd(learned)

	for _, lit := range s.toClear {
		s.seen[lit.Var()] = false
	}
	s.varDecayActivity()
	s.clauseDecayActivity()
	return learned, btLevel, lbd
}

// minimizeLearned removes from the learned clause every literal whose
// antecedent is fully covered by other literals of the clause
// (self-subsumption). The asserting literal at index 0 is always kept.
func (s *Solver) minimizeLearned(learned []Lit) []Lit {
	sz := 1
	for i := 1; i < len(learned); i++ {
		v := learned[i].Var()
		reason := s.reason[v]
		if reason == nil {
			learned[sz] = learned[i]
			sz++
			continue
		}
		for k := 0; k < reason.Len(); k++ {
			lit := reason.Get(k)
			if lit.Var() != v && !s.seen[lit.Var()] && s.varLevel[lit.Var()] > 0 {
				learned[sz] = learned[i]
				sz++
				break
			}
		}
	}
	return learned[:sz]
}

// computeLbd returns the Literal Block Distance of the given lits, i.e the
// number of distinct decision levels they span.
func (s *Solver) computeLbd(lits []Lit) int {
	s.lbdGen++
	lbd := 0
	for _, lit := range lits {
		lvl := s.varLevel[lit.Var()]
		if s.lbdStamps[lvl] != s.lbdGen {
			s.lbdStamps[lvl] = s.lbdGen
			lbd++
		}
	}
	return lbd
}

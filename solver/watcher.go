package solver

import "fmt"

// Watched literals. Each non-unit clause is watched by its first two
// literals. watches.bin[l] and watches.occ[l] list the clauses in which the
// negation of l occupies a watched slot, so that when l becomes true only
// those clauses need to be re-examined. Binary clauses are kept in dedicated
// lists: for them the other literal is known without touching the clause.
type watcher struct {
	clause *Clause
	other  Lit // The other lit for binary clauses, a blocker for longer ones.
}

type watcherList struct {
	bin [][]watcher // For each literal, the binary clauses where its negation appears.
	occ [][]watcher // For each literal, the longer clauses where its negation is watched.
}

func (s *Solver) initWatcherList() {
	s.watches = watcherList{
		bin: make([][]watcher, s.nbVars*2),
		occ: make([][]watcher, s.nbVars*2),
	}
}

// watchClause registers c in the watch lists of its two first literals.
func (s *Solver) watchClause(c *Clause) {
	if c.Len() == 2 {
		first, second := c.First(), c.Second()
		s.watches.bin[first.Negation()] = append(s.watches.bin[first.Negation()], watcher{clause: c, other: second})
		s.watches.bin[second.Negation()] = append(s.watches.bin[second.Negation()], watcher{clause: c, other: first})
		return
	}
	neg0 := c.First().Negation()
	neg1 := c.Second().Negation()
	s.watches.occ[neg0] = append(s.watches.occ[neg0], watcher{clause: c, other: c.Second()})
	s.watches.occ[neg1] = append(s.watches.occ[neg1], watcher{clause: c, other: c.First()})
}

// unwatchClause removes c from the watch lists of its two watched literals.
// Only called on non-binary clauses.
func (s *Solver) unwatchClause(c *Clause) {
	for i := 0; i < 2; i++ {
		neg := c.Get(i).Negation()
		ws := s.watches.occ[neg]
		j := 0
		// The clause must be present; a miss means the watch invariant was broken.
		for ws[j].clause != c {
			j++
		}
		last := len(ws) - 1
		ws[j] = ws[last]
		s.watches.occ[neg] = ws[:last]
	}
}

// propagate drains the assignment queue, moving watches around and enqueueing
// literals that became unit. It returns the conflicting clause if both watched
// literals of some clause became false, or nil once the queue is empty.
func (s *Solver) propagate() *Clause {
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead] // p was just made true; clauses watching ¬p must be checked.
		s.qhead++
		s.stats.Propagations++

		for _, w := range s.watches.bin[p] {
			switch s.litValue(w.other) {
			case lUndef:
				// Keep the forced literal in slot 0: conflict analysis
				// relies on antecedents starting with the literal they forced.
				if w.clause.First() != w.other {
					w.clause.swap(0, 1)
				}
				s.uncheckedEnqueue(w.other, w.clause)
			case lFalse:
				s.qhead = len(s.trail)
				return w.clause
			}
		}

		falseLit := p.Negation()
		ws := s.watches.occ[p]
		i, j := 0, 0
		for i < len(ws) {
			w := ws[i]
			i++
			// Blocker fast path: the clause is already satisfied.
			if s.litValue(w.other) == lTrue {
				ws[j] = w
				j++
				continue
			}
			c := w.clause
			// Keep the falsified literal in slot 1.
			if c.First() == falseLit {
				c.swap(0, 1)
			}
			if c.Second() != falseLit {
				panic(fmt.Sprintf("solver: clause %v does not watch %d", c, falseLit.Int()))
			}
			first := c.First()
			nw := watcher{clause: c, other: first}
			if first != w.other && s.litValue(first) == lTrue {
				ws[j] = nw
				j++
				continue
			}
			// Look for a new literal to watch instead of falseLit.
			found := false
			for k := 2; k < c.Len(); k++ {
				if s.litValue(c.Get(k)) != lFalse {
					c.swap(1, k)
					neg := c.Second().Negation()
					s.watches.occ[neg] = append(s.watches.occ[neg], nw)
					found = true
					break
				}
			}
			if found {
				continue
			}
			// No replacement: the clause is unit or conflicting.
			ws[j] = nw
			j++
			if s.litValue(first) == lFalse {
				s.qhead = len(s.trail)
				for i < len(ws) {
					ws[j] = ws[i]
					j++
					i++
				}
				s.watches.occ[p] = ws[:j]
				return c
			}
			s.uncheckedEnqueue(first, c)
		}
		s.watches.occ[p] = ws[:j]
	}
	return nil
}

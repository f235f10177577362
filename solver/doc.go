/*
Package solver provides an incremental CDCL SAT solver.

Given a propositional formula in conjunctive normal form, the solver decides
whether an assignment of truth values to variables satisfying every clause
exists, produces one if so, and proves unsatisfiability otherwise. It
implements the classic conflict-driven clause learning loop: two-watched
literal unit propagation, first-UIP conflict analysis with clause
minimization, VSIDS-style branching with phase saving, Luby restarts and
activity/LBD-based deletion of learned clauses.

Describing a problem

The solver owns no file format. Clauses are lists of literals, built either
from the package's Lit type or from DIMACS-style signed integers:

	s, err := solver.New(3)
	if err != nil { ... }
	_ = s.AddIntClause([]int{1, 2})
	_ = s.AddIntClause([]int{-1, 3})
	_ = s.AddIntClause([]int{-2, -3})

Solving

Solve takes a context for cancellation, optional assumptions, and resource
limits:

	res, err := s.Solve(context.Background(), nil, solver.Limits{})
	if res.Status == solver.Sat {
		model := res.Model // model[i] is the binding of variable i+1
	}

Incremental use

Clauses can be added between Solve calls and literals can be assumed for the
duration of a single call; learned clauses and heuristic state persist, which
makes repeated nearby queries much cheaper than solving from scratch:

	res, err = s.Solve(ctx, []solver.Lit{solver.IntToLit(-2)}, solver.Limits{})

When the assumptions are responsible for unsatisfiability, the result carries
a subset of them that already contradicts the formula.
*/
package solver

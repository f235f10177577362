package solver

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSolver(t *testing.T, nbVars int, clauses [][]int) *Solver {
	t.Helper()
	s, err := NewFromClauses(nbVars, clauses)
	require.NoError(t, err)
	return s
}

func solve(t *testing.T, s *Solver) Result {
	t.Helper()
	res, err := s.Solve(context.Background(), nil, Limits{})
	require.NoError(t, err)
	return res
}

// satisfies tells whether the model satisfies the DIMACS-style clause.
func satisfies(model []bool, clause []int) bool {
	for _, l := range clause {
		if l > 0 && model[l-1] {
			return true
		}
		if l < 0 && !model[-l-1] {
			return true
		}
	}
	return false
}

// bruteForceSat enumerates all assignments. Only usable on tiny formulas.
func bruteForceSat(nbVars int, clauses [][]int) bool {
	model := make([]bool, nbVars)
	for mask := 0; mask < 1<<nbVars; mask++ {
		for v := 0; v < nbVars; v++ {
			model[v] = mask&(1<<v) != 0
		}
		ok := true
		for _, clause := range clauses {
			if !satisfies(model, clause) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// checkWatchInvariant verifies that, at propagation fixpoint, any clause
// whose two watched literals are both false is fully falsified.
func checkWatchInvariant(t *testing.T, s *Solver) {
	t.Helper()
	if !s.ok {
		// A terminal conflict at the ground level flushes the propagation
		// queue without restoring the watches; the instance only ever
		// answers Unsat from then on, so there is no fixpoint to check.
		return
	}
	for _, clauses := range [][]*Clause{s.clauses, s.learned} {
		for _, c := range clauses {
			if c.Len() < 2 {
				continue
			}
			if s.litValue(c.First()) != lFalse || s.litValue(c.Second()) != lFalse {
				continue
			}
			for i := 0; i < c.Len(); i++ {
				assert.Equal(t, lFalse, s.litValue(c.Get(i)), "clause %v watched two false lits but lit %d is not false", c, c.Get(i).Int())
			}
		}
	}
}

// pigeonhole encodes "pigeons pigeons into holes holes, one per hole".
// Unsatisfiable whenever pigeons > holes.
func pigeonhole(pigeons, holes int) (nbVars int, clauses [][]int) {
	nbVars = pigeons * holes
	for i := 0; i < pigeons; i++ {
		clause := make([]int, holes)
		for j := 0; j < holes; j++ {
			clause[j] = i*holes + j + 1
		}
		clauses = append(clauses, clause)
	}
	for j := 0; j < holes; j++ {
		for i1 := 0; i1 < pigeons; i1++ {
			for i2 := i1 + 1; i2 < pigeons; i2++ {
				clauses = append(clauses, []int{-(i1*holes + j + 1), -(i2*holes + j + 1)})
			}
		}
	}
	return nbVars, clauses
}

func TestUnitClause(t *testing.T) {
	s := mustSolver(t, 1, [][]int{{1}})
	res := solve(t, s)
	require.Equal(t, Sat, res.Status)
	assert.Equal(t, []bool{true}, res.Model)
}

func TestTrivialUnsat(t *testing.T) {
	s := mustSolver(t, 1, [][]int{{1}, {-1}})
	res := solve(t, s)
	assert.Equal(t, Unsat, res.Status)
	assert.Empty(t, res.FailedAssumptions)
}

func TestForcedContradiction(t *testing.T) {
	s := mustSolver(t, 2, [][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}})
	res := solve(t, s)
	assert.Equal(t, Unsat, res.Status)
}

// A refutation completed by a ground-level conflict flushes the propagation
// queue for good. The instance stays usable (it keeps answering Unsat from
// its root flag) and the fixpoint checker must not inspect the dead state.
func TestGroundConflictEndsSearch(t *testing.T) {
	s := mustSolver(t, 2, [][]int{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}})
	require.Equal(t, Unsat, solve(t, s).Status)
	assert.False(t, s.ok)
	assert.Equal(t, len(s.trail), s.qhead)
	checkWatchInvariant(t, s)
	assert.Equal(t, Unsat, solve(t, s).Status)
}

func TestPigeonhole(t *testing.T) {
	nbVars, clauses := pigeonhole(2, 1)
	s := mustSolver(t, nbVars, clauses)
	assert.Equal(t, Unsat, solve(t, s).Status)

	nbVars, clauses = pigeonhole(4, 3)
	s = mustSolver(t, nbVars, clauses)
	assert.Equal(t, Unsat, solve(t, s).Status)

	nbVars, clauses = pigeonhole(3, 3)
	s = mustSolver(t, nbVars, clauses)
	assert.Equal(t, Sat, solve(t, s).Status)
}

func TestIndependentUnits(t *testing.T) {
	clauses := [][]int{{1}, {2}, {3}, {1, 4}}
	s := mustSolver(t, 4, clauses)
	res := solve(t, s)
	require.Equal(t, Sat, res.Status)
	assert.True(t, res.Model[0])
	assert.True(t, res.Model[1])
	assert.True(t, res.Model[2])
	for _, clause := range clauses {
		assert.True(t, satisfies(res.Model, clause), "clause %v not satisfied", clause)
	}
}

func TestSolveTable(t *testing.T) {
	tests := []struct {
		name     string
		nbVars   int
		clauses  [][]int
		expected Status
	}{
		{"empty formula", 0, nil, Sat},
		{"one free var", 1, nil, Sat},
		{"chain", 4, [][]int{{1}, {-1, 2}, {-2, 3}, {-3, 4}}, Sat},
		{"broken chain", 4, [][]int{{1}, {-1, 2}, {-2, 3}, {-3, 4}, {-4}}, Unsat},
		{"trivial unsat", 3, [][]int{{1, 2, 3}, {-1}, {-2}, {-3}}, Unsat},
		{"implications", 10, [][]int{{1}, {-2, 3}, {-2, 4}, {-5, 3}, {-5, 6}, {-7, 3}, {-7, 8}, {-9, 10}, {-9, 4}, {-1, 10}, {-1, 6}, {3, 10}, {-3, -10}, {4, 6, 8}}, Sat},
		{"tautology only", 2, [][]int{{1, -1}}, Sat},
		{"duplicate lits", 2, [][]int{{1, 1, 2}, {-1, -1}}, Sat},
		{"duplicate lits unsat", 2, [][]int{{1, 1, 2}, {-1, -1}, {-2, -2, -2}}, Unsat},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := mustSolver(t, test.nbVars, test.clauses)
			res := solve(t, s)
			require.Equal(t, test.expected, res.Status)
			if res.Status == Sat {
				for _, clause := range test.clauses {
					assert.True(t, satisfies(res.Model, clause), "clause %v not satisfied", clause)
				}
			}
			checkWatchInvariant(t, s)
		})
	}
}

func TestBruteForceAgreement(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		nbVars := 3 + rnd.Intn(7) // 3 to 9 vars
		nbClauses := 2 + rnd.Intn(5*nbVars)
		clauses := make([][]int, nbClauses)
		for j := range clauses {
			clause := make([]int, 3)
			for k := range clause {
				v := 1 + rnd.Intn(nbVars)
				if rnd.Intn(2) == 0 {
					v = -v
				}
				clause[k] = v
			}
			clauses[j] = clause
		}
		expected := Unsat
		if bruteForceSat(nbVars, clauses) {
			expected = Sat
		}
		s := mustSolver(t, nbVars, clauses)
		res := solve(t, s)
		require.Equal(t, expected, res.Status, "wrong verdict for %v", clauses)
		if res.Status == Sat {
			for _, clause := range clauses {
				require.True(t, satisfies(res.Model, clause), "clause %v not satisfied by %v", clause, res.Model)
			}
		}
		checkWatchInvariant(t, s)
	}
}

func TestResolveIdempotent(t *testing.T) {
	nbVars, clauses := pigeonhole(3, 3)
	s := mustSolver(t, nbVars, clauses)
	first := solve(t, s)
	second := solve(t, s)
	assert.Equal(t, first.Status, second.Status)

	nbVars, clauses = pigeonhole(3, 2)
	s = mustSolver(t, nbVars, clauses)
	assert.Equal(t, Unsat, solve(t, s).Status)
	assert.Equal(t, Unsat, solve(t, s).Status)
}

func TestIncrementalAddClause(t *testing.T) {
	s := mustSolver(t, 2, [][]int{{-1, 2}, {1, 2}, {-1, -2}})
	res := solve(t, s)
	require.Equal(t, Sat, res.Status)
	assert.False(t, res.Model[0])
	assert.True(t, res.Model[1])

	// Forcing var 1 makes the formula unsatisfiable.
	require.NoError(t, s.AddIntClause([]int{1}))
	res = solve(t, s)
	assert.Equal(t, Unsat, res.Status)

	// Once unsat, further clauses change nothing.
	require.NoError(t, s.AddIntClause([]int{2}))
	assert.Equal(t, Unsat, solve(t, s).Status)
}

func TestSolveUnderAssumptions(t *testing.T) {
	s := mustSolver(t, 1, [][]int{{1}})
	res, err := s.Solve(context.Background(), []Lit{IntToLit(-1)}, Limits{})
	require.NoError(t, err)
	require.Equal(t, Unsat, res.Status)
	assert.Equal(t, []Lit{IntToLit(-1)}, res.FailedAssumptions)

	// The same formula without assumptions is satisfiable: nothing was
	// permanently added by the failed query.
	res = solve(t, s)
	require.Equal(t, Sat, res.Status)
	assert.Equal(t, []bool{true}, res.Model)
}

func TestConflictLimit(t *testing.T) {
	nbVars, clauses := pigeonhole(4, 3)
	s := mustSolver(t, nbVars, clauses)
	res, err := s.Solve(context.Background(), nil, Limits{MaxConflicts: 1})
	require.NoError(t, err)
	require.Equal(t, Indet, res.Status)
	assert.Equal(t, ReasonConflictLimit, res.Reason)

	// The instance remains valid for continuation with relaxed limits.
	res, err = s.Solve(context.Background(), nil, Limits{})
	require.NoError(t, err)
	assert.Equal(t, Unsat, res.Status)
}

func TestTimeLimit(t *testing.T) {
	nbVars, clauses := pigeonhole(4, 3)
	s := mustSolver(t, nbVars, clauses)
	res, err := s.Solve(context.Background(), nil, Limits{MaxTime: time.Nanosecond})
	require.NoError(t, err)
	require.Equal(t, Indet, res.Status)
	assert.Equal(t, ReasonTimeout, res.Reason)

	res, err = s.Solve(context.Background(), nil, Limits{})
	require.NoError(t, err)
	assert.Equal(t, Unsat, res.Status)
}

func TestInterruption(t *testing.T) {
	nbVars, clauses := pigeonhole(4, 3)
	s := mustSolver(t, nbVars, clauses)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Solve(ctx, nil, Limits{})
	require.NoError(t, err)
	require.Equal(t, Indet, res.Status)
	assert.Equal(t, ReasonInterrupted, res.Reason)

	// A cancelled instance is poisoned and must be discarded.
	_, err = s.Solve(context.Background(), nil, Limits{})
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, s.AddIntClause([]int{1}), ErrInterrupted)
}

func TestFormulaErrors(t *testing.T) {
	_, err := New(-1)
	assert.ErrorIs(t, err, ErrTooFewVars)

	s, err := New(3)
	require.NoError(t, err)
	assert.ErrorIs(t, s.AddIntClause([]int{0}), ErrLitOutOfRange)
	assert.ErrorIs(t, s.AddIntClause([]int{1, 4}), ErrLitOutOfRange)
	assert.ErrorIs(t, s.AddClause([]Lit{Lit(-2)}), ErrLitOutOfRange)

	_, err = s.Solve(context.Background(), []Lit{IntToLit(4)}, Limits{})
	assert.ErrorIs(t, err, ErrLitOutOfRange)
}

func TestModel(t *testing.T) {
	s := mustSolver(t, 2, [][]int{{1}, {-2}})
	assert.Panics(t, func() { s.Model() })
	res := solve(t, s)
	require.Equal(t, Sat, res.Status)
	assert.Equal(t, []bool{true, false}, s.Model())
}

func TestStatsAndRestarts(t *testing.T) {
	nbVars, clauses := pigeonhole(5, 4)
	s, err := New(nbVars, Options{RestartInterval: 1})
	require.NoError(t, err)
	for _, clause := range clauses {
		require.NoError(t, s.AddIntClause(clause))
	}
	res := solve(t, s)
	require.Equal(t, Unsat, res.Status)
	stats := s.Stats()
	assert.Positive(t, stats.Conflicts)
	assert.Positive(t, stats.Decisions)
	assert.Positive(t, stats.Propagations)
	assert.Positive(t, stats.Restarts)
}

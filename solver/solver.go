package solver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultRestartInterval = 100   // Conflicts per Luby unit.
	defaultVarDecay        = 0.8   // Initial variable activity decay.
	maxVarDecay            = 0.95  // varDecay slowly converges towards this.
	defaultClauseDecay     = 0.999 // Clause activity decay.
)

// Options are the tunable parameters of a Solver. The restart schedule and
// the deletion ranking have no single correct setting; the defaults follow
// common practice (Luby restarts, LBD-then-activity deletion).
type Options struct {
	// RestartInterval scales the Luby restart sequence: the ith restart
	// happens after luby(i) * RestartInterval conflicts. Defaults to 100.
	RestartInterval int
	// VarDecay is the initial variable activity decay factor. It slowly
	// rises towards 0.95 as conflicts accumulate. Defaults to 0.8.
	VarDecay float64
	// ClauseDecay is the learned clause activity decay factor. Defaults to 0.999.
	ClauseDecay float64
	// PhaseSaving makes decisions reuse the polarity a variable last had.
	// When disabled, decisions always try false first.
	PhaseSaving bool
	// Logger, when non-nil, receives progress and lifecycle events.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the options used when New is called without any.
func DefaultOptions() Options {
	return Options{
		RestartInterval: defaultRestartInterval,
		VarDecay:        defaultVarDecay,
		ClauseDecay:     defaultClauseDecay,
		PhaseSaving:     true,
	}
}

// A Solver holds a CNF formula and solves it, possibly several times and
// under shifting assumptions, keeping learned clauses and heuristic scores
// between calls. It is the main data structure of this package.
//
// A Solver is not safe for concurrent use; independent instances are fully
// isolated from one another and may run on separate goroutines.
type Solver struct {
	opts   Options
	logger logrus.FieldLogger

	nbVars      int
	status      Status
	ok          bool // False once the formula was proven unsat at the root.
	interrupted bool

	clauses []*Clause // Original clauses of size >= 2.
	learned []*Clause
	watches watcherList

	assigns  []lbool
	varLevel []int32   // Level at which each var was assigned (valid when bound).
	reason   []*Clause // Antecedent of each var; nil for decisions and unbound vars.
	trail    []Lit
	levels   []int // Trail offset at which each decision level starts.
	qhead    int
	polarity []bool // Saved phase of each var.

	activity  []float64
	order     varOrder
	varInc    float64
	varDecay  float64
	clauseInc float32

	// Reusable buffers for conflict analysis.
	seen       []bool
	toClear    []Lit
	learnedBuf []Lit
	lbdStamps  []int32
	lbdGen     int32

	nbMaxLearned int // Current learned clause budget.
	idxReduce    int // Nb of reduction cycles + 1.

	assumptions []Lit
	lastModel   []bool
	stats       Stats
}

// New makes a solver over nbVars variables with an empty formula.
// Clauses are added afterwards with AddClause or AddIntClause.
func New(nbVars int, opts ...Options) (*Solver, error) {
	if nbVars < 0 {
		return nil, ErrTooFewVars
	}
	o := DefaultOptions()
	if len(opts) > 0 {
		o = opts[0]
		if o.RestartInterval <= 0 {
			o.RestartInterval = defaultRestartInterval
		}
		if o.VarDecay <= 0 || o.VarDecay >= 1 {
			o.VarDecay = defaultVarDecay
		}
		if o.ClauseDecay <= 0 || o.ClauseDecay >= 1 {
			o.ClauseDecay = defaultClauseDecay
		}
	}
	s := &Solver{
		opts:         o,
		logger:       o.Logger,
		nbVars:       nbVars,
		status:       Indet,
		ok:           true,
		assigns:      make([]lbool, nbVars),
		varLevel:     make([]int32, nbVars),
		reason:       make([]*Clause, nbVars),
		trail:        make([]Lit, 0, nbVars),
		polarity:     make([]bool, nbVars),
		activity:     make([]float64, nbVars),
		varInc:       1.0,
		varDecay:     o.VarDecay,
		clauseInc:    1.0,
		seen:         make([]bool, nbVars),
		lbdStamps:    make([]int32, nbVars+1),
		nbMaxLearned: initNbMaxLearned,
		idxReduce:    1,
	}
	s.initWatcherList()
	s.order = newVarOrder(s.activity, nbVars)
	return s, nil
}

// NewFromClauses makes a solver over nbVars variables and adds the given
// DIMACS-style clauses to it.
func NewFromClauses(nbVars int, clauses [][]int) (*Solver, error) {
	s, err := New(nbVars)
	if err != nil {
		return nil, err
	}
	for _, clause := range clauses {
		if err := s.AddIntClause(clause); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NbVars returns the number of variables of the formula.
func (s *Solver) NbVars() int { return s.nbVars }

// Stats returns counters about the solving process so far.
func (s *Solver) Stats() Stats { return s.stats }

// Model returns the model found by the last successful Solve call:
// for each variable, in order, its binding.
// It panics if no model was found yet.
func (s *Solver) Model() []bool {
	if s.lastModel == nil {
		panic("cannot call Model() on a solver that has not found a model")
	}
	model := make([]bool, len(s.lastModel))
	copy(model, s.lastModel)
	return model
}

var _ Interface = (*Solver)(nil)

// solveRun tracks the budgets of one Solve call.
type solveRun struct {
	start          time.Time
	limits         Limits
	startConflicts int64
}

// Solve searches for an assignment satisfying every clause added so far as
// well as every assumption, within the given limits.
//
// The returned Result is Sat with a model, Unsat (with the responsible subset
// of assumptions when they caused the unsatisfiability), or Indet with the
// reason the search stopped. A context cancellation interrupts the search and
// poisons the instance: a cancelled solver must be discarded.
//
// An error is only returned for malformed input or calls on a poisoned
// instance; resource limits are reported through the Result instead.
func (s *Solver) Solve(ctx context.Context, assumptions []Lit, limits Limits) (Result, error) {
	if s.interrupted {
		return Result{Status: Indet, Reason: ReasonInterrupted}, ErrInterrupted
	}
	for _, l := range assumptions {
		if err := s.validLit(l); err != nil {
			return Result{}, err
		}
	}
	if !s.ok {
		return Result{Status: Unsat}, nil
	}
	s.backtrackTo(0)
	s.status = Indet
	s.assumptions = assumptions
	run := &solveRun{start: time.Now(), limits: limits, startConflicts: s.stats.Conflicts}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"vars":        s.nbVars,
			"clauses":     len(s.clauses),
			"assumptions": len(assumptions),
		}).Info("solving")
	}

	var res Result
	for try := uint64(0); ; try++ {
		budget := int64(luby(try)) * int64(s.opts.RestartInterval)
		done, r := s.search(ctx, budget, run)
		if done {
			res = r
			break
		}
		s.stats.Restarts++
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"restarts":  s.stats.Restarts,
				"conflicts": s.stats.Conflicts,
				"learned":   len(s.learned),
				"deleted":   s.stats.Deleted,
			}).Debug("restarting")
		}
	}
	s.assumptions = nil
	s.backtrackTo(0)
	if res.Status == Sat {
		s.status = Sat
		s.lastModel = res.Model
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"status":    res.Status.String(),
			"conflicts": s.stats.Conflicts - run.startConflicts,
			"duration":  time.Since(run.start).String(),
		}).Info("solved")
	}
	return res, nil
}

// search runs the propagate/analyze/decide loop until a verdict is reached, a
// limit fires, or the restart budget (in conflicts) is exhausted. It returns
// false as its first value when the caller should restart the search.
func (s *Solver) search(ctx context.Context, budget int64, run *solveRun) (bool, Result) {
	var restartConflicts int64
	for {
		if confl := s.propagate(); confl != nil {
			s.stats.Conflicts++
			restartConflicts++
			if s.decisionLevel() == 0 {
				s.setUnsat()
				return true, Result{Status: Unsat}
			}
			learned, btLevel, lbd := s.analyze(confl)
			s.backtrackTo(btLevel)
			if len(learned) == 1 {
				// The whole search is committed to this literal from now on.
				s.uncheckedEnqueue(learned[0], nil)
				s.stats.UnitLearned++
				if s.logger != nil {
					s.logger.WithField("lit", learned[0].Int()).Debug("learned unit clause")
				}
			} else {
				lits := make([]Lit, len(learned))
				copy(lits, learned)
				c := newLearnedClause(lits)
				c.setLbd(lbd)
				s.addLearned(c)
				s.uncheckedEnqueue(lits[0], c)
			}
			if s.stats.Conflicts%5000 == 0 && s.varDecay < maxVarDecay {
				s.varDecay += 0.01
			}
			if done, res := s.checkBudgets(ctx, run); done {
				return true, res
			}
		} else {
			if budget > 0 && restartConflicts >= budget {
				s.backtrackTo(0)
				return false, Result{}
			}
			if s.mustReduce() {
				s.reduceLearned()
			}
			if done, res := s.checkBudgets(ctx, run); done {
				return true, res
			}
			next := LitUndef
			for next == LitUndef && s.decisionLevel() < len(s.assumptions) {
				p := s.assumptions[s.decisionLevel()]
				switch s.litValue(p) {
				case lTrue:
					// Already holds: open a dummy level to keep
					// assumption indices aligned with levels.
					s.newDecisionLevel()
				case lFalse:
					fails := s.analyzeFinal(p)
					s.backtrackTo(0)
					return true, Result{Status: Unsat, FailedAssumptions: fails}
				default:
					next = p
				}
			}
			if next == LitUndef {
				next = s.chooseLit()
				if next == LitUndef {
					// Every variable is assigned without conflict.
					return true, Result{Status: Sat, Model: s.extractModel()}
				}
			}
			s.newDecisionLevel()
			s.uncheckedEnqueue(next, nil)
		}
	}
}

// checkBudgets polls the cancellation signal and the solve limits.
func (s *Solver) checkBudgets(ctx context.Context, run *solveRun) (bool, Result) {
	if ctx.Err() != nil {
		s.interrupted = true
		return true, Result{Status: Indet, Reason: ReasonInterrupted}
	}
	if run.limits.MaxConflicts > 0 && s.stats.Conflicts-run.startConflicts >= run.limits.MaxConflicts {
		s.backtrackTo(0)
		return true, Result{Status: Indet, Reason: ReasonConflictLimit}
	}
	if run.limits.MaxTime > 0 && time.Since(run.start) >= run.limits.MaxTime {
		s.backtrackTo(0)
		return true, Result{Status: Indet, Reason: ReasonTimeout}
	}
	return false, Result{}
}

// chooseLit picks the unbound variable with the highest activity and returns
// its decision literal, or LitUndef if all variables are bound.
func (s *Solver) chooseLit() Lit {
	for !s.order.empty() {
		v := s.order.removeMin()
		if s.assigns[v] == lUndef {
			s.stats.Decisions++
			return v.SignedLit(!s.polarity[v])
		}
	}
	return LitUndef
}

func (s *Solver) extractModel() []bool {
	model := make([]bool, s.nbVars)
	for v := range model {
		model[v] = s.assigns[v] == lTrue
	}
	return model
}

func (s *Solver) varDecayActivity() {
	s.varInc *= 1 / s.varDecay
}

func (s *Solver) varBumpActivity(v Var) {
	s.activity[v] += s.varInc
	if s.activity[v] > 1e100 { // Rescaling is needed to avoid overflowing.
		for i := range s.activity {
			s.activity[i] *= 1e-100
		}
		s.varInc *= 1e-100
	}
	if s.order.contains(v) {
		s.order.decrease(v)
	}
}

func (s *Solver) clauseDecayActivity() {
	s.clauseInc *= 1 / float32(s.opts.ClauseDecay)
}

func (s *Solver) clauseBumpActivity(c *Clause) {
	if !c.Learned() {
		return
	}
	c.activity += s.clauseInc
	if c.activity > 1e30 { // Rescale to avoid overflow.
		for _, c2 := range s.learned {
			c2.activity *= 1e-30
		}
		s.clauseInc *= 1e-30
	}
}

package solver

import (
	"context"
	"time"
)

// Status is the verdict of a solve call.
type Status byte

const (
	// Indet means the problem is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the problem is satisfiable.
	Sat
	// Unsat means the problem is unsatisfiable, possibly only under the
	// assumptions that were passed to Solve.
	Unsat
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	default:
		panic("invalid status")
	}
}

// Reason explains why a solve call returned Indet.
type Reason byte

const (
	// ReasonNone is used on Sat and Unsat results.
	ReasonNone = Reason(iota)
	// ReasonConflictLimit means the conflict budget was exhausted.
	// The solver remains usable and can be called again with larger limits.
	ReasonConflictLimit
	// ReasonTimeout means the time budget was exhausted.
	// The solver remains usable and can be called again with larger limits.
	ReasonTimeout
	// ReasonInterrupted means the context was cancelled. The solver's
	// internal state is undefined and the instance must be discarded.
	ReasonInterrupted
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonConflictLimit:
		return "conflict limit reached"
	case ReasonTimeout:
		return "timeout"
	case ReasonInterrupted:
		return "interrupted"
	default:
		panic("invalid reason")
	}
}

// Limits bounds the resources a single Solve call may spend.
// A zero value means "unlimited".
type Limits struct {
	MaxConflicts int64         // Max number of conflicts before giving up.
	MaxTime      time.Duration // Max wall-clock time before giving up.
}

// A Result is the outcome of a Solve call.
//
// When Status is Sat, Model associates each variable, in order, with its
// binding. When Status is Unsat and the unsatisfiability was caused by the
// assumptions rather than by the formula itself, FailedAssumptions holds a
// subset of the assumptions that is already unsatisfiable together with the
// formula. When Status is Indet, Reason tells why the search stopped.
type Result struct {
	Status            Status
	Model             []bool
	Reason            Reason
	FailedAssumptions []Lit
}

// Interface is any type implementing an incremental SAT solver.
// The basic Solver defined in this package implements it; wrappers around
// external solver processes can implement it, too, and be swapped in at
// construction time by higher-level code.
type Interface interface {
	// AddClause adds a clause to the formula. It can be called between
	// Solve calls; learned clauses and heuristic state are preserved.
	AddClause(lits []Lit) error
	// Solve searches for a model under the given assumptions within the
	// given limits.
	Solve(ctx context.Context, assumptions []Lit, limits Limits) (Result, error)
	// Model returns the last model found. It panics if no model was found yet.
	Model() []bool
}

package solver

import (
	"github.com/pkg/errors"
)

// Errors returned when a malformed formula is handed to the solver.
// They are all detected before any search starts: once a clause was
// accepted, solving can only answer Sat, Unsat or Indet.
var (
	// ErrLitOutOfRange means a literal references a variable greater than
	// the number of variables the solver was created with, or the zero
	// literal was used.
	ErrLitOutOfRange = errors.New("literal out of range")
	// ErrTooFewVars means the solver was created with a negative number of variables.
	ErrTooFewVars = errors.New("negative number of variables")
	// ErrInterrupted means the instance was cancelled during a previous
	// Solve call and must be discarded.
	ErrInterrupted = errors.New("solver was interrupted and must be discarded")
)

// validLit checks that l refers to one of the solver's variables.
func (s *Solver) validLit(l Lit) error {
	if l < 0 || int(l.Var()) >= s.nbVars {
		return errors.Wrapf(ErrLitOutOfRange, "literal %d over %d variables", l.Int(), s.nbVars)
	}
	return nil
}

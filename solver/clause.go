package solver

import (
	"fmt"
	"strings"
)

// A Clause is a disjunction of literals, associated with bookkeeping data
// used by the deletion policy (for learned clauses).
type Clause struct {
	lits []Lit
	// flags' bits are as follow:
	// leftmost bit: learned flag.
	// second bit: locked flag (set while the clause is some variable's antecedent).
	// last 30 bits: LBD value (meaningful for learned clauses only).
	flags    uint32
	activity float32
}

const (
	learnedMask uint32 = 1 << 31
	lockedMask  uint32 = 1 << 30
	bothMasks   uint32 = learnedMask | lockedMask
)

// NewClause returns a clause whose lits are given as an argument.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits}
}

// newLearnedClause returns a new clause marked as learned.
func newLearnedClause(lits []Lit) *Clause {
	return &Clause{lits: lits, flags: learnedMask}
}

// Learned returns true iff c was deduced during conflict analysis.
func (c *Clause) Learned() bool {
	return c.flags&learnedMask == learnedMask
}

func (c *Clause) lock() {
	c.flags |= lockedMask
}

func (c *Clause) unlock() {
	c.flags &= ^lockedMask
}

// isLocked is true iff c is a learned clause currently acting as an
// antecedent; such a clause must not be deleted.
func (c *Clause) isLocked() bool {
	return c.flags&bothMasks == bothMasks
}

func (c *Clause) lbd() int {
	return int(c.flags & ^bothMasks)
}

func (c *Clause) setLbd(lbd int) {
	c.flags = (c.flags & bothMasks) | uint32(lbd)
}

// Len returns the nb of lits in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// First returns the first lit from the clause.
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second lit from the clause.
func (c *Clause) Second() Lit {
	return c.lits[1]
}

// Get returns the ith literal from the clause.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// swap swaps the ith and jth lits from the clause.
func (c *Clause) swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// String returns a DIMACS-like representation of the clause.
func (c *Clause) String() string {
	parts := make([]string, len(c.lits))
	for i, lit := range c.lits {
		parts[i] = fmt.Sprintf("%d", lit.Int())
	}
	return strings.Join(parts, " ") + " 0"
}

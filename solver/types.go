package solver

// Basic types shared by the whole solver: variables, literals and the
// three-valued assignment domain.

// Var start at 0; thus the CNF variable 1 is encoded as the Var 0.
type Var int32

// Lit start at 0 and are positive; the sign is the last bit.
// Thus the CNF literal -3 is encoded as 2*(3-1) + 1 = 5.
type Lit int32

// LitUndef is a sentinel value denoting the absence of a literal.
const LitUndef = Lit(-1)

// IntToLit converts a CNF literal to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// IntToVar converts a CNF variable to a Var.
func IntToVar(i int) Var {
	return Var(i - 1)
}

// Lit returns the positive Lit associated to v.
func (v Var) Lit() Lit {
	return Lit(v * 2)
}

// SignedLit returns the Lit associated to v, negated if 'signed', positive else.
func (v Var) SignedLit(signed bool) Lit {
	if signed {
		return Lit(v*2) + 1
	}
	return Lit(v * 2)
}

// Var returns the variable of l.
func (l Lit) Var() Var {
	return Var(l / 2)
}

// Int returns the equivalent CNF literal.
func (l Lit) Int() int {
	res := int(l/2 + 1)
	if l&1 == 1 {
		return -res
	}
	return res
}

// IsPositive is true iff l is not negated.
func (l Lit) IsPositive() bool {
	return l%2 == 0
}

// Negation returns -l, i.e the positive version of l if it is negative,
// or the negative version otherwise.
func (l Lit) Negation() Lit {
	return l ^ 1
}

// lbool is the value of a variable under the current partial assignment.
type lbool int8

const (
	lUndef = lbool(0)
	lTrue  = lbool(1)
	lFalse = lbool(-1)
)

func (b lbool) String() string {
	switch b {
	case lTrue:
		return "true"
	case lFalse:
		return "false"
	default:
		return "undef"
	}
}

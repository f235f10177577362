package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToLit(t *testing.T) {
	tests := []struct {
		cnf int
		lit Lit
	}{
		{1, 0},
		{-1, 1},
		{2, 2},
		{-2, 3},
		{3, 4},
		{-3, 5},
	}
	for _, test := range tests {
		lit := IntToLit(test.cnf)
		assert.Equal(t, test.lit, lit, "IntToLit(%d)", test.cnf)
		assert.Equal(t, test.cnf, lit.Int(), "roundtrip of %d", test.cnf)
		assert.Equal(t, test.cnf > 0, lit.IsPositive())
		assert.Equal(t, IntToLit(-test.cnf), lit.Negation())
		assert.Equal(t, lit, lit.Negation().Negation())
		assert.Equal(t, lit.Var(), lit.Negation().Var())
	}
}

func TestLboolString(t *testing.T) {
	assert.Equal(t, "undef", lUndef.String())
	assert.Equal(t, "true", lTrue.String())
	assert.Equal(t, "false", lFalse.String())
}

func TestVarLits(t *testing.T) {
	v := IntToVar(3)
	assert.Equal(t, Var(2), v)
	assert.Equal(t, IntToLit(3), v.Lit())
	assert.Equal(t, IntToLit(3), v.SignedLit(false))
	assert.Equal(t, IntToLit(-3), v.SignedLit(true))
	assert.Equal(t, v, v.Lit().Var())
	assert.Equal(t, v, v.SignedLit(true).Var())
}

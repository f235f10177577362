package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseFlags(t *testing.T) {
	c := NewClause([]Lit{IntToLit(1), IntToLit(-2), IntToLit(3)})
	assert.False(t, c.Learned())
	assert.False(t, c.isLocked())
	assert.Equal(t, 3, c.Len())

	learned := newLearnedClause([]Lit{IntToLit(-1), IntToLit(2)})
	assert.True(t, learned.Learned())
	assert.False(t, learned.isLocked())

	learned.setLbd(7)
	assert.Equal(t, 7, learned.lbd())
	assert.True(t, learned.Learned())

	learned.lock()
	assert.True(t, learned.isLocked())
	assert.Equal(t, 7, learned.lbd(), "locking must not clobber the LBD")

	learned.setLbd(2)
	assert.Equal(t, 2, learned.lbd())
	assert.True(t, learned.isLocked(), "setLbd must not clobber the flags")

	learned.unlock()
	assert.False(t, learned.isLocked())
	assert.True(t, learned.Learned())
}

func TestClauseAccessors(t *testing.T) {
	c := NewClause([]Lit{IntToLit(1), IntToLit(-2), IntToLit(3)})
	assert.Equal(t, IntToLit(1), c.First())
	assert.Equal(t, IntToLit(-2), c.Second())
	assert.Equal(t, IntToLit(3), c.Get(2))
	c.swap(0, 2)
	assert.Equal(t, IntToLit(3), c.First())
	assert.Equal(t, IntToLit(1), c.Get(2))
}

func TestClauseString(t *testing.T) {
	c := NewClause([]Lit{IntToLit(1), IntToLit(-2), IntToLit(3)})
	assert.Equal(t, "1 -2 3 0", c.String())
}

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuby(t *testing.T) {
	vals := []uint64{1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, 1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, 16}
	for i, val := range vals {
		assert.Equal(t, val, luby(uint64(i)), "wrong value for luby(%d)", i)
	}
}

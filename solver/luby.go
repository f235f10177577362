package solver

// luby returns the ith element (0-based) of the Luby sequence:
// 1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, ...
// Restart intervals follow this sequence, scaled by Options.RestartInterval.
func luby(i uint64) uint64 {
	size := uint64(1)
	seq := 0
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) >> 1
		seq--
		i %= size
	}
	return 1 << seq
}

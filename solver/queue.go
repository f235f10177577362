package solver

// A binary heap over variables ordered by decreasing activity, with support
// for decrease-key, in the tradition of MiniSat's mtl/Heap.h. Ties are broken
// towards the smallest variable index so that decisions are reproducible.

type varOrder struct {
	activity []float64 // The solver's activity slice, not a copy.
	content  []Var
	indices  []int32 // Position of each var in content; -1 means absence.
}

func newVarOrder(activity []float64, nbVars int) varOrder {
	q := varOrder{
		activity: activity,
		content:  make([]Var, 0, nbVars),
		indices:  make([]int32, nbVars),
	}
	for i := range q.indices {
		q.indices[i] = -1
	}
	for v := 0; v < nbVars; v++ {
		q.insert(Var(v))
	}
	return q
}

func (q *varOrder) less(a, b Var) bool {
	if q.activity[a] != q.activity[b] {
		return q.activity[a] > q.activity[b]
	}
	return a < b
}

func heapLeft(i int) int   { return i*2 + 1 }
func heapRight(i int) int  { return (i + 1) * 2 }
func heapParent(i int) int { return (i - 1) >> 1 }

func (q *varOrder) percolateUp(i int) {
	x := q.content[i]
	p := heapParent(i)
	for i != 0 && q.less(x, q.content[p]) {
		q.content[i] = q.content[p]
		q.indices[q.content[p]] = int32(i)
		i = p
		p = heapParent(p)
	}
	q.content[i] = x
	q.indices[x] = int32(i)
}

func (q *varOrder) percolateDown(i int) {
	x := q.content[i]
	for heapLeft(i) < len(q.content) {
		child := heapLeft(i)
		if r := heapRight(i); r < len(q.content) && q.less(q.content[r], q.content[child]) {
			child = r
		}
		if !q.less(q.content[child], x) {
			break
		}
		q.content[i] = q.content[child]
		q.indices[q.content[i]] = int32(i)
		i = child
	}
	q.content[i] = x
	q.indices[x] = int32(i)
}

func (q *varOrder) empty() bool { return len(q.content) == 0 }

func (q *varOrder) contains(v Var) bool {
	return q.indices[v] >= 0
}

// insert puts v back in the ordering. Inserting a contained var is a no-op.
func (q *varOrder) insert(v Var) {
	if q.contains(v) {
		return
	}
	q.indices[v] = int32(len(q.content))
	q.content = append(q.content, v)
	q.percolateUp(int(q.indices[v]))
}

// decrease notifies the heap that v's activity grew.
func (q *varOrder) decrease(v Var) {
	q.percolateUp(int(q.indices[v]))
}

// removeMin pops the unattributed variable with the highest activity.
func (q *varOrder) removeMin() Var {
	x := q.content[0]
	last := len(q.content) - 1
	q.content[0] = q.content[last]
	q.indices[q.content[0]] = 0
	q.indices[x] = -1
	q.content = q.content[:last]
	if len(q.content) > 1 {
		q.percolateDown(0)
	}
	return x
}

package solver

// Stats are counters about the resolution of the problem.
// They are provided for information purpose only and accumulate across
// Solve calls on the same instance.
type Stats struct {
	Restarts      int64
	Conflicts     int64
	Decisions     int64
	Propagations  int64
	Learned       int64 // How many clauses were learned.
	UnitLearned   int64 // How many unit clauses were learned.
	BinaryLearned int64 // How many binary clauses were learned.
	Deleted       int64 // How many learned clauses were deleted.
}

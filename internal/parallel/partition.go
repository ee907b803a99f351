package parallel

// Policy decides what happens to the remainder when an extent does not
// divide evenly among the workers.
type Policy uint8

const (
	// RemainderToLast gives every worker extent/N items and hands the
	// extent%N trailing items to the last worker, so the extent is always
	// fully covered.
	RemainderToLast Policy = iota

	// Floor gives worker t exactly [t*(extent/N), (t+1)*(extent/N)).
	// The extent%N trailing items belong to nobody.
	Floor
)

// String returns a string representation of the partition policy.
func (p Policy) String() string {
	switch p {
	case RemainderToLast:
		return "RemainderToLast"
	case Floor:
		return "Floor"
	default:
		return "Unknown"
	}
}

// Range is a half-open index interval [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return max(r.End-r.Start, 0)
}

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool {
	return r.Len() == 0
}

// Split returns the share of [0, extent) owned by worker out of workers.
// Workers is clamped to at least 1; worker must be in [0, workers).
func Split(extent, workers, worker int, policy Policy) Range {
	workers = max(workers, 1)
	extent = max(extent, 0)

	chunk := extent / workers
	r := Range{Start: worker * chunk, End: (worker + 1) * chunk}
	if policy == RemainderToLast && worker == workers-1 {
		r.End = extent
	}
	return r
}

// Uncovered returns how many trailing indices of [0, extent) no worker owns
// under the given policy.
func Uncovered(extent, workers int, policy Policy) int {
	if policy == RemainderToLast {
		return 0
	}
	workers = max(workers, 1)
	extent = max(extent, 0)
	return extent - workers*(extent/workers)
}

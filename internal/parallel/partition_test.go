package parallel

import "testing"

func TestPolicy_String(t *testing.T) {
	tests := []struct {
		p    Policy
		want string
	}{
		{RemainderToLast, "RemainderToLast"},
		{Floor, "Floor"},
		{Policy(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Policy(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		extent  int
		workers int
		policy  Policy
		want    []Range
	}{
		{"even floor", 8, 4, Floor, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"even remainder", 8, 4, RemainderToLast, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven floor drops tail", 10, 4, Floor, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven remainder to last", 10, 4, RemainderToLast, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 10}}},
		{"more workers than items floor", 3, 4, Floor, []Range{{0, 0}, {0, 0}, {0, 0}, {0, 0}}},
		{"more workers than items remainder", 3, 4, RemainderToLast, []Range{{0, 0}, {0, 0}, {0, 0}, {0, 3}}},
		{"single worker", 7, 1, Floor, []Range{{0, 7}}},
		{"empty extent", 0, 3, RemainderToLast, []Range{{0, 0}, {0, 0}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for w, want := range tt.want {
				if got := Split(tt.extent, tt.workers, w, tt.policy); got != want {
					t.Errorf("Split(%d, %d, %d, %v) = %v, want %v",
						tt.extent, tt.workers, w, tt.policy, got, want)
				}
			}
		})
	}
}

// TestSplit_DisjointAndCovering tests that RemainderToLast partitions tile
// the extent exactly, for many shapes.
func TestSplit_DisjointAndCovering(t *testing.T) {
	for extent := 0; extent <= 40; extent++ {
		for workers := 1; workers <= 9; workers++ {
			next := 0
			for w := range workers {
				r := Split(extent, workers, w, RemainderToLast)
				if r.Start != next {
					t.Fatalf("extent %d workers %d: worker %d starts at %d, want %d",
						extent, workers, w, r.Start, next)
				}
				next = r.End
			}
			if next != extent {
				t.Fatalf("extent %d workers %d: coverage ends at %d", extent, workers, next)
			}
		}
	}
}

func TestUncovered(t *testing.T) {
	tests := []struct {
		extent, workers int
		policy          Policy
		want            int
	}{
		{10, 4, Floor, 2},
		{10, 4, RemainderToLast, 0},
		{8, 4, Floor, 0},
		{3, 4, Floor, 3},
		{5, 0, Floor, 0},
	}

	for _, tt := range tests {
		if got := Uncovered(tt.extent, tt.workers, tt.policy); got != tt.want {
			t.Errorf("Uncovered(%d, %d, %v) = %d, want %d", tt.extent, tt.workers, tt.policy, got, tt.want)
		}
	}
}

func TestRange_Len(t *testing.T) {
	if got := (Range{Start: 3, End: 7}).Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	if !(Range{Start: 5, End: 5}).Empty() {
		t.Error("Range{5, 5} should be empty")
	}
	if got := (Range{Start: 5, End: 2}).Len(); got != 0 {
		t.Errorf("inverted Len() = %d, want 0", got)
	}
}

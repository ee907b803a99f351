package parallel

import "sync"

// Barrier is a reusable rendezvous point for a fixed cohort of goroutines.
//
// Each call to Wait blocks until all parties have called Wait for the same
// generation, then releases all of them together and re-arms for the next
// generation. Every write made by any party before its Wait happens before
// every party returns from that Wait.
//
// The number of parties is fixed at creation. A party that never arrives
// blocks its peers forever; there is no timeout.
type Barrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	parties    int
	arrived    int
	generation uint64
}

// NewBarrier creates a barrier for the given number of parties.
// If parties is less than 1, the barrier is created for a single party.
func NewBarrier(parties int) *Barrier {
	if parties < 1 {
		parties = 1
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until every party has reached the barrier.
// It returns true for exactly one party per generation (the last to
// arrive), mirroring PTHREAD_BARRIER_SERIAL_THREAD.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.generation++
		b.cond.Broadcast()
		return true
	}

	for gen == b.generation {
		b.cond.Wait()
	}
	return false
}

// Parties returns the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}

// Generation returns how many times the barrier has released its cohort.
func (b *Barrier) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generation
}
